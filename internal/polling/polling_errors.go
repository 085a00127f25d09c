package polling

import (
	"errors"
	"net/http"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrInvalidOption    = errors.New("option does not belong to proposal")
	ErrAlreadyVoted     = errors.New("user has already voted on this proposal")
	ErrVotingClosed     = errors.New("voting deadline has passed")
	ErrTooFewOptions    = errors.New("proposal needs at least two options")
	ErrPastDeadline     = errors.New("voting deadline must be in the future")

	// ErrContention means the tally could not be committed within the retry
	// budget because of concurrent writers. Transient; safe for the client to
	// retry since the vote was not recorded.
	ErrContention = errors.New("vote could not be committed, too many concurrent writers")
)

// HTTPStatus maps the polling sentinel errors onto API status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrProposalNotFound), errors.Is(err, ErrOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, ErrVotingClosed):
		return http.StatusGone
	case errors.Is(err, ErrInvalidOption), errors.Is(err, ErrTooFewOptions), errors.Is(err, ErrPastDeadline):
		return http.StatusBadRequest
	case errors.Is(err, ErrContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
