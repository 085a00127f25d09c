package polling

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// castVoteRetryBudget bounds the optimistic retry loop. Exhausting it surfaces
// ErrContention, which the client may retry; the unique vote index guarantees
// a retry can never double-count.
const castVoteRetryBudget = 5

// errVersionConflict signals a concurrent tally commit; internal to the retry
// loop and never returned to callers.
var errVersionConflict = errors.New("proposal version changed")

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// CastVote records a user's vote and updates the tally in one transaction.
// Eligibility is re-checked against the row read inside the transaction, so
// the deadline and uniqueness decisions always refer to committed state.
func (r *VoteRepository) CastVote(ctx context.Context, proposalID string, userID uint, optionID string) (*Proposal, error) {
	for attempt := 0; attempt < castVoteRetryBudget; attempt++ {
		proposal, err := r.tryCastVote(ctx, proposalID, userID, optionID)
		if errors.Is(err, errVersionConflict) {
			continue
		}
		return proposal, err
	}
	return nil, ErrContention
}

func (r *VoteRepository) tryCastVote(ctx context.Context, proposalID string, userID uint, optionID string) (*Proposal, error) {
	var committed *Proposal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var proposal Proposal
		if err := tx.
			Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			First(&proposal, "id = ?", proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProposalNotFound
			}
			return err
		}
		if proposal.Closed(time.Now()) {
			return ErrVotingClosed
		}
		if !proposal.HasOption(optionID) {
			return ErrInvalidOption
		}

		vote := &Vote{ProposalID: proposalID, UserID: userID, OptionID: optionID}
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return err
		}

		// Counters are bumped with atomic increments; the version check on the
		// proposal row makes the whole read-modify-write optimistic, so the
		// snapshot returned below is exactly what this transaction committed.
		res := tx.Model(&Proposal{}).
			Where("id = ? AND version = ?", proposalID, proposal.Version).
			Updates(map[string]interface{}{
				"total_votes": gorm.Expr("total_votes + 1"),
				"version":     gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errVersionConflict
		}
		if err := tx.Model(&ProposalOption{}).
			Where("id = ? AND proposal_id = ?", optionID, proposalID).
			Update("votes", gorm.Expr("votes + 1")).Error; err != nil {
			return err
		}

		var fresh Proposal
		if err := tx.
			Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			First(&fresh, "id = ?", proposalID).Error; err != nil {
			return err
		}
		committed = &fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// GetUserVote retrieves the user's vote on a proposal, nil when absent
func (r *VoteRepository) GetUserVote(ctx context.Context, proposalID string, userID uint) (*Vote, error) {
	var vote Vote
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND user_id = ?", proposalID, userID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}
