package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/WaqarAhmad321/smart-city-sol/internal/polling"
)

// VoteEventPublisher writes committed vote events to Kafka. Messages are keyed
// by proposal id so all votes on one proposal land on the same partition and
// consumers see its tally updates in commit order.
type VoteEventPublisher struct {
	writer *kafka.Writer
}

func NewVoteEventPublisher(brokers []string, topic string) *VoteEventPublisher {
	return &VoteEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *VoteEventPublisher) PublishVoteCast(ctx context.Context, msg polling.VoteMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ProposalID),
		Value: payload,
	})
}

func (p *VoteEventPublisher) Close() error {
	return p.writer.Close()
}
