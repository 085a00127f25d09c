package events

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Broadcaster fans a payload out to live subscribers on a named channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, channel string, payload []byte) error
}

// RedisBroadcaster publishes over redis pub/sub; UI gateways subscribe to
// push live tally updates to connected clients.
type RedisBroadcaster struct {
	client *redis.Client
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}
