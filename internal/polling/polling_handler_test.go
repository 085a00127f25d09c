package polling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaqarAhmad321/smart-city-sol/internal/auth"
)

func newTestRouter(service *PollingService, user *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPollingHandler(service)

	router := gin.New()
	asUser := func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
		}
		c.Next()
	}
	router.GET("/api/v1/proposals", handler.ListProposals)
	router.GET("/api/v1/proposals/:proposal_id", handler.GetProposal)
	router.POST("/api/v1/proposals", asUser, handler.CreateProposal)
	router.POST("/api/v1/proposals/:proposal_id/votes", asUser, handler.CastVote)
	router.GET("/api/v1/proposals/:proposal_id/votes/me", asUser, handler.GetMyVote)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProposalEndpoint(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(service, &auth.Principal{ID: 1})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/proposals", CreateProposalRequest{
		Title:          "Extend park hours",
		Description:    "Keep the park open later in summer",
		VotingDeadline: time.Now().Add(time.Hour),
		Options:        []string{"Yes", "No"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var proposal Proposal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &proposal))
	assert.NotEmpty(t, proposal.ID)
	assert.Len(t, proposal.Options, 2)
}

func TestCreateProposalEndpointRejectsBadInput(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(service, &auth.Principal{ID: 1})

	// Binding rejects a single option before the service is reached.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/proposals", map[string]any{
		"title":          "Extend park hours",
		"description":    "Keep the park open later in summer",
		"votingDeadline": time.Now().Add(time.Hour),
		"options":        []string{"Yes"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A past deadline passes binding and is rejected by the store rules.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/proposals", map[string]any{
		"title":          "Extend park hours",
		"description":    "Keep the park open later in summer",
		"votingDeadline": time.Now().Add(-time.Hour),
		"options":        []string{"Yes", "No"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProposalEndpointUnauthorized(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(service, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/proposals", CreateProposalRequest{
		Title:          "Extend park hours",
		Description:    "Keep the park open later in summer",
		VotingDeadline: time.Now().Add(time.Hour),
		Options:        []string{"Yes", "No"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCastVoteEndpointStatusMapping(t *testing.T) {
	service, store, _ := newTestService(t)
	open := seedProposal(t, store, time.Now().Add(time.Hour), "Yes", "No")
	closed := seedProposal(t, store, time.Now().Add(-time.Minute), "Yes", "No")
	router := newTestRouter(service, &auth.Principal{ID: 9})

	votePath := func(id string) string { return fmt.Sprintf("/api/v1/proposals/%s/votes", id) }

	rec := doJSON(t, router, http.MethodPost, votePath(open.ID), CastVoteRequest{OptionID: "Yes"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result VoteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Yes", result.OptionID)
	assert.Equal(t, uint(1), result.TotalVotes)

	rec = doJSON(t, router, http.MethodPost, votePath(open.ID), CastVoteRequest{OptionID: "No"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, votePath(closed.ID), CastVoteRequest{OptionID: "Yes"})
	assert.Equal(t, http.StatusGone, rec.Code)

	otherUser := newTestRouter(service, &auth.Principal{ID: 10})
	rec = doJSON(t, otherUser, http.MethodPost, votePath(open.ID), CastVoteRequest{OptionID: "Maybe"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, votePath("00000000-0000-0000-0000-000000000000"), CastVoteRequest{OptionID: "Yes"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCastVoteEndpointContention(t *testing.T) {
	store := NewMemoryStore()
	service := NewPollingService(store, &failingVoteStore{err: ErrContention}, nil)
	proposal := seedProposal(t, store, time.Now().Add(time.Hour), "Yes", "No")
	router := newTestRouter(service, &auth.Principal{ID: 1})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/votes", CastVoteRequest{OptionID: "Yes"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestGetProposalEndpoint(t *testing.T) {
	service, store, _ := newTestService(t)
	proposal := seedProposal(t, store, time.Now().Add(time.Hour), "Yes", "No")
	router := newTestRouter(service, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/proposals/"+proposal.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/proposals/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProposalsEndpoint(t *testing.T) {
	service, store, _ := newTestService(t)
	seedProposal(t, store, time.Now().Add(time.Hour), "Yes", "No")
	seedProposal(t, store, time.Now().Add(time.Hour), "A", "B", "C")
	router := newTestRouter(service, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/proposals", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []Proposal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestGetMyVoteEndpoint(t *testing.T) {
	service, store, _ := newTestService(t)
	proposal := seedProposal(t, store, time.Now().Add(time.Hour), "Yes", "No")
	router := newTestRouter(service, &auth.Principal{ID: 3})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/proposals/"+proposal.ID+"/votes/me", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/proposals/"+proposal.ID+"/votes", CastVoteRequest{OptionID: "No"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/proposals/"+proposal.ID+"/votes/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vote Vote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vote))
	assert.Equal(t, "No", vote.OptionID)
	assert.Equal(t, uint(3), vote.UserID)
}
