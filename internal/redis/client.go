package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{client}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}

// ReadingChannel is the pub/sub channel carrying each patient's latest
// normalized reading.
func ReadingChannel(patientID string) string {
	return fmt.Sprintf("readings:%s", patientID)
}

// PublishReading pushes a serialized reading onto the given channel.
func (c *Client) PublishReading(ctx context.Context, channel string, payload []byte) error {
	return c.Publish(ctx, channel, payload).Err()
}
