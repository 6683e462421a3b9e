package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// NewClusterClient creates a new traced Redis client for Redis cluster
func NewClusterClient(client *redis.ClusterClient) *Client {
	return &Client{cmdable: client}
}

func (c *Client) startSpan(ctx context.Context, op, key string, extra ...attribute.KeyValue) (context.Context, trace.Span, func(error)) {
	start := time.Now()
	attrs := append([]attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.operation", op),
		attribute.String("redis.client", "ride-api"),
	}, extra...)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+op, trace.WithAttributes(attrs...))
	finish := func(err error) {
		duration := time.Since(start)
		span.SetAttributes(
			attribute.Int64("redis.duration_ms", duration.Milliseconds()),
			attribute.String("redis.duration", duration.String()),
		)
		if err != nil && err != redis.Nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "success")
		}
		span.End()
	}
	return ctx, span, finish
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, _, finish := c.startSpan(ctx, "get", key)
	cmd := c.cmdable.Get(ctx, key)
	finish(cmd.Err())
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, _, finish := c.startSpan(ctx, "set", key,
		attribute.String("redis.expiration", expiration.String()))
	cmd := c.cmdable.Set(ctx, key, value, expiration)
	finish(cmd.Err())
	return cmd
}

// Del wraps Redis Del with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, _, finish := c.startSpan(ctx, "del", key,
		attribute.Int("redis.key_count", len(keys)))
	cmd := c.cmdable.Del(ctx, keys...)
	finish(cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, _, finish := c.startSpan(ctx, "ping", "")
	cmd := c.cmdable.Ping(ctx)
	finish(cmd.Err())
	return cmd
}

// Exists wraps Redis Exists with tracing
func (c *Client) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, _, finish := c.startSpan(ctx, "exists", key)
	cmd := c.cmdable.Exists(ctx, keys...)
	finish(cmd.Err())
	return cmd
}

// Keys wraps Redis Keys with tracing
func (c *Client) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	ctx, _, finish := c.startSpan(ctx, "keys", pattern)
	cmd := c.cmdable.Keys(ctx, pattern)
	finish(cmd.Err())
	return cmd
}

// TTL wraps Redis TTL with tracing
func (c *Client) TTL(ctx context.Context, key string) *redis.DurationCmd {
	ctx, _, finish := c.startSpan(ctx, "ttl", key)
	cmd := c.cmdable.TTL(ctx, key)
	finish(cmd.Err())
	return cmd
}

// LLen wraps Redis LLen with tracing
func (c *Client) LLen(ctx context.Context, key string) *redis.IntCmd {
	ctx, _, finish := c.startSpan(ctx, "llen", key)
	cmd := c.cmdable.LLen(ctx, key)
	finish(cmd.Err())
	return cmd
}

// LPush wraps Redis LPush with tracing
func (c *Client) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	ctx, _, finish := c.startSpan(ctx, "lpush", key)
	cmd := c.cmdable.LPush(ctx, key, values...)
	finish(cmd.Err())
	return cmd
}

// BRPop wraps Redis BRPop with tracing
func (c *Client) BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, _, finish := c.startSpan(ctx, "brpop", key)
	cmd := c.cmdable.BRPop(ctx, timeout, keys...)
	finish(cmd.Err())
	return cmd
}

// Pipeline returns a Redis pipeline
func (c *Client) Pipeline() redis.Pipeliner {
	return c.cmdable.Pipeline()
}
