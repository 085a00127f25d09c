package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

// LiveTallyChannel is the redis pub/sub channel carrying tally updates.
const LiveTallyChannel = "polling:tally"

// NewConsumerConfig returns the sarama configuration for the tally relay
func NewConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_0_0_0
	config.ClientID = "civic-polling-worker"
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	return config
}

// TallyRelay consumes vote events and rebroadcasts them over redis pub/sub so
// dashboards and live result cards can follow tallies without polling the
// store. It implements sarama.ConsumerGroupHandler.
type TallyRelay struct {
	broadcaster Broadcaster
}

func NewTallyRelay(broadcaster Broadcaster) *TallyRelay {
	return &TallyRelay{broadcaster: broadcaster}
}

func (r *TallyRelay) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (r *TallyRelay) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (r *TallyRelay) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := r.relay(session.Context(), message.Value); err != nil {
			slog.Error("failed to relay vote event", "partition", message.Partition, "offset", message.Offset, "error", err)
		} else {
			session.MarkMessage(message, "")
		}
	}
	return nil
}

func (r *TallyRelay) relay(ctx context.Context, payload []byte) error {
	var msg polling.VoteMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("failed to decode vote event: %w", err)
	}
	update, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("%s:%s", LiveTallyChannel, msg.ProposalID)
	if err := r.broadcaster.Broadcast(ctx, channel, update); err != nil {
		return fmt.Errorf("failed to broadcast tally update: %w", err)
	}
	slog.Debug("tally update relayed", "proposal_id", msg.ProposalID, "total_votes", msg.TotalVotes)
	return nil
}
