package polling

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// CreateProposal persists a proposal together with its options
func (r *ProposalRepository) CreateProposal(ctx context.Context, proposal *Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

// GetProposal retrieves a proposal with its options in display order
func (r *ProposalRepository) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	var proposal Proposal
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&proposal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

// ListProposals retrieves all proposals, newest first
func (r *ProposalRepository) ListProposals(ctx context.Context) ([]*Proposal, error) {
	var proposals []*Proposal
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
