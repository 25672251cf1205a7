package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rosterhub-dev/roster-manager/backend/internal/config"
	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// QueueName is the RabbitMQ queue the API publishes solve triggers to and
// cmd/solver consumes from.
const QueueName = "solver_queue"

func resultKey(tenantID int64) string {
	return fmt.Sprintf("solver_result_%d", tenantID)
}

func cancelKey(tenantID int64) string {
	return fmt.Sprintf("solver_cancel_%d", tenantID)
}

// Client implements the solve-service contract over RabbitMQ (triggers) and
// Redis (latest results and cancel flags). It is shared by the API and the
// solve worker.
type Client struct {
	cfg         *config.Config
	channel     *amqp.Channel
	redisClient *redis.Client
}

func NewClient(cfg *config.Config, channel *amqp.Channel, redisClient *redis.Client) *Client {
	return &Client{
		cfg:         cfg,
		channel:     channel,
		redisClient: redisClient,
	}
}

func (c *Client) Trigger(tenantID int64) error {
	body, err := json.Marshal(domain.SolverMessage{Type: domain.SolverMessageSolve, TenantID: tenantID})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish solve trigger: %v: %w", err, domain.ErrUpstream)
	}

	return nil
}

// Cancel raises the tenant's cancel flag. The worker polls it between
// generations, so cancelling with no solve in flight is a harmless no-op.
func (c *Client) Cancel(tenantID int64) error {
	ctx, cancel := c.redisCtx()
	defer cancel()

	if err := c.redisClient.Set(ctx, cancelKey(tenantID), "1", time.Hour).Err(); err != nil {
		return fmt.Errorf("set solve cancel flag: %v: %w", err, domain.ErrUpstream)
	}

	return nil
}

// LatestResult returns the most recent solve snapshot for the tenant, or
// (nil, nil) while none exists.
func (c *Client) LatestResult(tenantID int64) (*domain.Roster, error) {
	ctx, cancel := c.redisCtx()
	defer cancel()

	body, err := c.redisClient.Get(ctx, resultKey(tenantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read solve result: %v: %w", err, domain.ErrUpstream)
	}

	roster := &domain.Roster{}
	if err := json.Unmarshal(body, roster); err != nil {
		return nil, fmt.Errorf("decode solve result: %v: %w", err, domain.ErrUpstream)
	}

	return roster, nil
}

// StoreResult is called by the worker when a solve finishes.
func (c *Client) StoreResult(roster *domain.Roster) error {
	body, err := json.Marshal(roster)
	if err != nil {
		return err
	}

	ctx, cancel := c.redisCtx()
	defer cancel()

	expiration := time.Duration(c.cfg.Redis.ResultExpiration) * time.Second
	if err := c.redisClient.Set(ctx, resultKey(roster.TenantID), body, expiration).Err(); err != nil {
		return fmt.Errorf("store solve result: %v: %w", err, domain.ErrUpstream)
	}

	return nil
}

// ClearCancel drops any pending cancel flag. The worker calls it right before
// a run starts; a flag raised while nothing was solving belongs to a solve
// that is already over and must not cut the next one short.
func (c *Client) ClearCancel(tenantID int64) {
	ctx, cancel := c.redisCtx()
	defer cancel()

	c.redisClient.Del(ctx, cancelKey(tenantID))
}

// CancelRequested reports and consumes the tenant's cancel flag.
func (c *Client) CancelRequested(tenantID int64) bool {
	ctx, cancel := c.redisCtx()
	defer cancel()

	deleted, err := c.redisClient.Del(ctx, cancelKey(tenantID)).Result()
	if err != nil {
		return false
	}

	return deleted > 0
}

func (c *Client) redisCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(c.cfg.Redis.OperationTimeout)*time.Second)
}
