package liam

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/liam-go/pkg/batch"
)

// CreateMemoriesBatch creates many memories concurrently, with at most
// concurrency requests in flight (batch.DefaultConcurrency when <= 0).
//
// The returned slice has one Result per input, in input order. A failing
// item is captured in its Result and never aborts the rest of the batch;
// callers inspect each outcome to detect failures.
func (c *Client) CreateMemoriesBatch(ctx context.Context, userKey string, memories []MemoryInput, concurrency int) []batch.Result[*Response] {
	ctx, span := tracer.Start(ctx, "liam.batch_create",
		trace.WithAttributes(
			attribute.Int("batch.items", len(memories)),
			attribute.Int("batch.concurrency", concurrency)))
	defer span.End()

	results := batch.Run(ctx, memories, concurrency, func(ctx context.Context, m MemoryInput) (*Response, error) {
		return c.CreateMemory(ctx, CreateMemoryRequest{
			UserKey:   userKey,
			Content:   m.Content,
			Tag:       m.Tag,
			SessionID: m.SessionID,
		})
	})

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	c.logger.Debug("batch create complete",
		zap.Int("items", len(memories)),
		zap.Int("failed", failed))
	return results
}

// GetAllTagged fetches memories for several tags concurrently, with at
// most concurrency requests in flight. The result map holds exactly the
// input tags, each mapped to that tag's outcome.
func (c *Client) GetAllTagged(ctx context.Context, userKey string, tags []string, concurrency int) map[string]batch.Result[*Response] {
	ctx, span := tracer.Start(ctx, "liam.batch_get_tagged",
		trace.WithAttributes(
			attribute.Int("batch.items", len(tags)),
			attribute.Int("batch.concurrency", concurrency)))
	defer span.End()

	return batch.RunKeyed(ctx, tags, concurrency, func(ctx context.Context, tag string) (*Response, error) {
		return c.GetMemoriesByTag(ctx, GetByTagRequest{UserKey: userKey, Tag: tag})
	})
}
