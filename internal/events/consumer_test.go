package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

type capturedBroadcast struct {
	channel string
	payload []byte
}

type fakeBroadcaster struct {
	broadcasts []capturedBroadcast
}

func (b *fakeBroadcaster) Broadcast(_ context.Context, channel string, payload []byte) error {
	b.broadcasts = append(b.broadcasts, capturedBroadcast{channel: channel, payload: payload})
	return nil
}

func TestTallyRelayBroadcastsPerProposalChannel(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	relay := NewTallyRelay(broadcaster)

	msg := polling.VoteMessage{
		ProposalID: "p-1",
		OptionID:   "opt-yes",
		UserID:     42,
		TotalVotes: 7,
		CastAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	require.NoError(t, relay.relay(context.Background(), payload))

	require.Len(t, broadcaster.broadcasts, 1)
	assert.Equal(t, "polling:tally:p-1", broadcaster.broadcasts[0].channel)

	var relayed polling.VoteMessage
	require.NoError(t, json.Unmarshal(broadcaster.broadcasts[0].payload, &relayed))
	assert.Equal(t, uint(7), relayed.TotalVotes)
	assert.Equal(t, "opt-yes", relayed.OptionID)
}

func TestTallyRelayRejectsMalformedPayload(t *testing.T) {
	relay := NewTallyRelay(&fakeBroadcaster{})

	err := relay.relay(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
