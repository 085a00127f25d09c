package polling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proposal is a votable item with an immutable set of options and a deadline.
// TotalVotes always equals the sum of the option counters; both are mutated
// only by CastVote inside a single transaction. Version guards the optimistic
// commit of concurrent tally updates.
type Proposal struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title           string    `gorm:"column:title;size:255;not null" json:"title"`
	Description     string    `gorm:"column:description;type:text;not null" json:"description"`
	CreatedBy       uint      `gorm:"column:created_by;not null;index" json:"createdBy"`
	VotingDeadline  time.Time `gorm:"column:voting_deadline;not null" json:"votingDeadline"`
	MediaURL        string    `gorm:"column:media_url;size:512" json:"mediaUrl,omitempty"`
	LocationAddress string    `gorm:"column:location_address;size:512" json:"locationAddress,omitempty"`
	TotalVotes      uint      `gorm:"column:total_votes;not null;default:0" json:"totalVotes"`
	Version         uint      `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Options []ProposalOption `gorm:"foreignKey:ProposalID;references:ID" json:"options"`
}

// TableName specifies the table name for Proposal
func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// HasOption reports whether optionID belongs to this proposal.
func (p *Proposal) HasOption(optionID string) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Closed reports whether the voting deadline has passed at the given instant.
func (p *Proposal) Closed(now time.Time) bool {
	return !now.Before(p.VotingDeadline)
}

// ProposalOption is one selectable choice within a proposal. Options are
// created together with their proposal and never added or removed afterwards.
type ProposalOption struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ProposalID string `gorm:"column:proposal_id;type:uuid;not null;index" json:"-"`
	Text       string `gorm:"column:text;size:255;not null" json:"text"`
	Votes      uint   `gorm:"column:votes;not null;default:0" json:"votes"`
	Position   int    `gorm:"column:position;not null" json:"-"`
}

// TableName specifies the table name for ProposalOption
func (ProposalOption) TableName() string {
	return "proposal_options"
}

// Vote is the durable fact that a user chose an option on a proposal. The
// unique compound index is the idempotency boundary for the whole subsystem:
// a second insert for the same (proposal, user) pair fails at the store no
// matter how requests interleave. Votes are never updated or deleted.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProposalID string    `gorm:"column:proposal_id;type:uuid;not null;uniqueIndex:idx_votes_proposal_user" json:"proposalId"`
	UserID     uint      `gorm:"column:user_id;not null;uniqueIndex:idx_votes_proposal_user" json:"userId"`
	OptionID   string    `gorm:"column:option_id;type:uuid;not null;index" json:"optionId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// CreateProposalRequest defines the input for creating a proposal
type CreateProposalRequest struct {
	Title           string    `json:"title" binding:"required,min=5"`
	Description     string    `json:"description" binding:"required,min=10"`
	VotingDeadline  time.Time `json:"votingDeadline" binding:"required"`
	Options         []string  `json:"options" binding:"required,min=2,dive,required"`
	MediaURL        string    `json:"mediaUrl"`
	LocationAddress string    `json:"locationAddress"`
}

// CastVoteRequest defines the input for casting a vote
type CastVoteRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// OptionTally is the per-option aggregate returned after a committed vote.
type OptionTally struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes uint   `json:"votes"`
}

// VoteResult is the coordinator's answer to a successful cast: the recorded
// choice plus the aggregate counts as committed.
type VoteResult struct {
	ProposalID string        `json:"proposalId"`
	OptionID   string        `json:"optionId"`
	TotalVotes uint          `json:"totalVotes"`
	Options    []OptionTally `json:"options"`
}

// VoteMessage is the event published after a vote commits
type VoteMessage struct {
	ProposalID string    `json:"proposal_id"`
	OptionID   string    `json:"option_id"`
	UserID     uint      `json:"user_id"`
	TotalVotes uint      `json:"total_votes"`
	CastAt     time.Time `json:"cast_at"`
}
