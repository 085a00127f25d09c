package polling

import "context"

// ProposalStore is durable storage for proposals and their embedded options.
type ProposalStore interface {
	CreateProposal(ctx context.Context, proposal *Proposal) error
	GetProposal(ctx context.Context, id string) (*Proposal, error)
	// ListProposals returns a fresh snapshot ordered by creation time, newest
	// first.
	ListProposals(ctx context.Context) ([]*Proposal, error)
}

// VoteStore is the vote ledger combined with the tally it keeps consistent.
type VoteStore interface {
	// CastVote records (proposalID, userID) -> optionID and increments the
	// option counter and the proposal total as one atomic unit, after
	// re-checking eligibility against the stored proposal. It returns the
	// proposal as committed, or one of ErrProposalNotFound, ErrInvalidOption,
	// ErrVotingClosed, ErrAlreadyVoted, ErrContention.
	CastVote(ctx context.Context, proposalID string, userID uint, optionID string) (*Proposal, error)
	// GetUserVote returns the user's recorded vote on a proposal, or nil when
	// the user has not voted.
	GetUserVote(ctx context.Context, proposalID string, userID uint) (*Vote, error)
}
