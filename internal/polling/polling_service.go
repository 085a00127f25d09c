package polling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// VotePublisher announces committed votes to the rest of the platform.
// Publishing is best-effort: the vote is durable before the event goes out.
type VotePublisher interface {
	PublishVoteCast(ctx context.Context, msg VoteMessage) error
}

type PollingService struct {
	proposals ProposalStore
	votes     VoteStore
	publisher VotePublisher
}

func NewPollingService(proposals ProposalStore, votes VoteStore, publisher VotePublisher) *PollingService {
	return &PollingService{
		proposals: proposals,
		votes:     votes,
		publisher: publisher,
	}
}

// CreateProposal validates and persists a new proposal with zeroed counters
func (s *PollingService) CreateProposal(ctx context.Context, creatorID uint, req CreateProposalRequest) (*Proposal, error) {
	if len(req.Options) < 2 {
		return nil, ErrTooFewOptions
	}
	if !req.VotingDeadline.After(time.Now()) {
		return nil, ErrPastDeadline
	}

	options := make([]ProposalOption, 0, len(req.Options))
	for i, text := range req.Options {
		options = append(options, ProposalOption{
			ID:       uuid.New().String(),
			Text:     text,
			Votes:    0,
			Position: i,
		})
	}

	proposal := &Proposal{
		Title:           req.Title,
		Description:     req.Description,
		CreatedBy:       creatorID,
		VotingDeadline:  req.VotingDeadline,
		MediaURL:        req.MediaURL,
		LocationAddress: req.LocationAddress,
		Options:         options,
	}

	if err := s.proposals.CreateProposal(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	return proposal, nil
}

// GetProposal retrieves a proposal with its current tally
func (s *PollingService) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	proposal, err := s.proposals.GetProposal(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProposalNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return proposal, nil
}

// ListProposals retrieves all proposals, newest first
func (s *PollingService) ListProposals(ctx context.Context) ([]*Proposal, error) {
	proposals, err := s.proposals.ListProposals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return proposals, nil
}

// GetUserVote returns the caller's recorded vote on a proposal, nil if none.
// The proposal is loaded first so an unknown id surfaces ErrProposalNotFound
// rather than an empty result.
func (s *PollingService) GetUserVote(ctx context.Context, proposalID string, userID uint) (*Vote, error) {
	if _, err := s.GetProposal(ctx, proposalID); err != nil {
		return nil, err
	}
	vote, err := s.votes.GetUserVote(ctx, proposalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

// CastVote records the user's vote and returns the committed tally. All
// eligibility checks happen inside the store's transaction, so two
// near-simultaneous requests for the same user cannot both pass the
// "not voted yet" check.
func (s *PollingService) CastVote(ctx context.Context, userID uint, proposalID, optionID string) (*VoteResult, error) {
	proposal, err := s.votes.CastVote(ctx, proposalID, userID, optionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrProposalNotFound),
			errors.Is(err, ErrVotingClosed),
			errors.Is(err, ErrInvalidOption),
			errors.Is(err, ErrAlreadyVoted),
			errors.Is(err, ErrContention):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to cast vote: %w", err)
		}
	}

	result := &VoteResult{
		ProposalID: proposal.ID,
		OptionID:   optionID,
		TotalVotes: proposal.TotalVotes,
		Options:    make([]OptionTally, 0, len(proposal.Options)),
	}
	for _, opt := range proposal.Options {
		result.Options = append(result.Options, OptionTally{
			ID:    opt.ID,
			Text:  opt.Text,
			Votes: opt.Votes,
		})
	}

	if s.publisher != nil {
		msg := VoteMessage{
			ProposalID: proposal.ID,
			OptionID:   optionID,
			UserID:     userID,
			TotalVotes: proposal.TotalVotes,
			CastAt:     time.Now().UTC(),
		}
		if err := s.publisher.PublishVoteCast(ctx, msg); err != nil {
			// The vote is already committed; consumers catch up from the store.
			slog.Warn("failed to publish vote event", "proposal_id", proposal.ID, "error", err)
		}
	}
	return result, nil
}
