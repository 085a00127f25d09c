package polling

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements ProposalStore and VoteStore in process memory with
// the same semantics as the gorm repositories. It backs the tests and lets
// the service run without a database.
type MemoryStore struct {
	mu        sync.Mutex
	proposals map[string]*Proposal
	votes     map[string]map[uint]*Vote // proposalID -> userID -> vote
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		proposals: make(map[string]*Proposal),
		votes:     make(map[string]map[uint]*Vote),
	}
}

func (s *MemoryStore) CreateProposal(_ context.Context, proposal *Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	now := time.Now()
	if proposal.CreatedAt.IsZero() {
		proposal.CreatedAt = now
	}
	proposal.UpdatedAt = now
	for i := range proposal.Options {
		proposal.Options[i].ProposalID = proposal.ID
	}
	s.proposals[proposal.ID] = cloneProposal(proposal)
	s.votes[proposal.ID] = make(map[uint]*Vote)
	return nil
}

func (s *MemoryStore) GetProposal(_ context.Context, id string) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[id]
	if !ok {
		return nil, ErrProposalNotFound
	}
	return cloneProposal(proposal), nil
}

func (s *MemoryStore) ListProposals(_ context.Context) ([]*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		list = append(list, cloneProposal(p))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// CastVote holds the store lock across check and write, which gives the same
// all-or-nothing outcome as the database transaction.
func (s *MemoryStore) CastVote(_ context.Context, proposalID string, userID uint, optionID string) (*Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[proposalID]
	if !ok {
		return nil, ErrProposalNotFound
	}
	if proposal.Closed(time.Now()) {
		return nil, ErrVotingClosed
	}
	if !proposal.HasOption(optionID) {
		return nil, ErrInvalidOption
	}
	if _, voted := s.votes[proposalID][userID]; voted {
		return nil, ErrAlreadyVoted
	}

	s.votes[proposalID][userID] = &Vote{
		ProposalID: proposalID,
		UserID:     userID,
		OptionID:   optionID,
		CreatedAt:  time.Now(),
	}
	for i := range proposal.Options {
		if proposal.Options[i].ID == optionID {
			proposal.Options[i].Votes++
		}
	}
	proposal.TotalVotes++
	proposal.Version++
	proposal.UpdatedAt = time.Now()
	return cloneProposal(proposal), nil
}

func (s *MemoryStore) GetUserVote(_ context.Context, proposalID string, userID uint) (*Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	votes, ok := s.votes[proposalID]
	if !ok {
		return nil, nil
	}
	vote, ok := votes[userID]
	if !ok {
		return nil, nil
	}
	copied := *vote
	return &copied, nil
}

func cloneProposal(p *Proposal) *Proposal {
	copied := *p
	copied.Options = make([]ProposalOption, len(p.Options))
	copy(copied.Options, p.Options)
	return &copied
}
