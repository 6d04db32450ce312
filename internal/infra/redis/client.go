// Package redis holds the review queue for advisory decisions: branches
// where the recommendation is a judgment call are queued here for human
// triage, scored by technique severity.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/advisor/internal/core/domain"
)

// Client wraps Redis operations for the review queue.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Key helpers
func reviewKey() string {
	return "advisor:review"
}

func tallyKey(technique domain.HandlingTechnique) string {
	return fmt.Sprintf("advisor:tally:%s", technique)
}

// reviewScore orders the queue by severity first, then age. Severity
// dominates; the timestamp fraction breaks ties oldest-first.
func reviewScore(severity int, at time.Time) float64 {
	return float64(severity)*1e12 + float64(at.Unix())
}

// PushReview enqueues an advisory decision record for human triage.
func (c *Client) PushReview(ctx context.Context, rec *domain.DecisionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	score := reviewScore(rec.Decision.Technique.Severity(), rec.CreatedAt)
	if err := c.rdb.ZAdd(ctx, reviewKey(), redis.Z{Score: score, Member: string(payload)}).Err(); err != nil {
		return fmt.Errorf("zadd failed: %w", err)
	}
	return nil
}

// PopReview pops the lowest-severity pending record.
// Returns found=false when the queue is empty.
func (c *Client) PopReview(ctx context.Context) (*domain.DecisionRecord, bool, error) {
	results, err := c.rdb.ZRangeWithScores(ctx, reviewKey(), 0, 0).Result()
	if err != nil {
		return nil, false, fmt.Errorf("zrange failed: %w", err)
	}
	if len(results) == 0 {
		return nil, false, nil
	}

	member := results[0].Member.(string)
	var rec domain.DecisionRecord
	if err := json.Unmarshal([]byte(member), &rec); err != nil {
		return nil, false, fmt.Errorf("invalid review payload: %w", err)
	}

	if err := c.rdb.ZRem(ctx, reviewKey(), member).Err(); err != nil {
		return nil, false, fmt.Errorf("zrem failed: %w", err)
	}
	return &rec, true, nil
}

// PendingReviews returns the number of records awaiting triage.
func (c *Client) PendingReviews(ctx context.Context) (int64, error) {
	n, err := c.rdb.ZCard(ctx, reviewKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard failed: %w", err)
	}
	return n, nil
}

// IncrTally bumps the rolling counter for a technique.
func (c *Client) IncrTally(ctx context.Context, technique domain.HandlingTechnique) error {
	return c.rdb.Incr(ctx, tallyKey(technique)).Err()
}

// GetTally reads the rolling counter for a technique. Missing keys read as 0.
func (c *Client) GetTally(ctx context.Context, technique domain.HandlingTechnique) (int64, error) {
	val, err := c.rdb.Get(ctx, tallyKey(technique)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get failed: %w", err)
	}
	return val, nil
}

// Health checks the Redis connection.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
