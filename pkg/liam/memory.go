package liam

import (
	"context"

	"github.com/fyrsmithlabs/liam-go/pkg/payload"
)

// CreateMemory stores a new memory entry for a user. The server processes
// it asynchronously; the response carries a process ID for MemoryStatus.
func (c *Client) CreateMemory(ctx context.Context, req CreateMemoryRequest) (*Response, error) {
	p := payload.New().
		Set("userKey", req.UserKey).
		Set("content", req.Content)
	if req.Tag != "" {
		p.Set("tag", req.Tag)
	}
	if req.SessionID != "" {
		p.Set("sessionId", req.SessionID)
	}
	return c.post(ctx, "memory/create", p)
}

// CreateMemoryWithImage stores a new memory with an associated
// base64-encoded image.
func (c *Client) CreateMemoryWithImage(ctx context.Context, req CreateMemoryWithImageRequest) (*Response, error) {
	p := payload.New().
		Set("userKey", req.UserKey).
		Set("content", req.Content).
		Set("image", req.Image)
	if req.Tag != "" {
		p.Set("tag", req.Tag)
	}
	if req.SessionID != "" {
		p.Set("sessionId", req.SessionID)
	}
	return c.post(ctx, "memory/create-with-image", p)
}

// MemoryStatus checks the processing status of a memory operation.
// processID may be empty to query the user's overall processing state.
func (c *Client) MemoryStatus(ctx context.Context, userKey, processID string) (*Response, error) {
	p := payload.New().Set("userKey", userKey)
	if processID != "" {
		p.Set("processId", processID)
	}
	return c.post(ctx, "memory/status", p)
}

// ListMemories retrieves memories for a user, optionally filtered by a
// free-text query.
func (c *Client) ListMemories(ctx context.Context, req ListMemoriesRequest) (*Response, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	p := payload.New().
		Set("userKey", req.UserKey).
		Set("limit", limit)
	if req.Query != "" {
		p.Set("query", req.Query)
	}
	return c.post(ctx, "memory/list", p)
}

// Chat answers a query using the user's memories as context.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*Response, error) {
	p := payload.New().
		Set("userKey", req.UserKey).
		Set("query", req.Query)
	if req.SessionID != "" {
		p.Set("sessionId", req.SessionID)
	}
	return c.post(ctx, "memory/chat", p)
}

// SummarizeMemory summarizes a user's memories. memoryID may be empty to
// summarize across all memories.
func (c *Client) SummarizeMemory(ctx context.Context, userKey, memoryID string) (*Response, error) {
	p := payload.New().Set("userKey", userKey)
	if memoryID != "" {
		p.Set("memoryId", memoryID)
	}
	return c.post(ctx, "memory/summarize", p)
}

// ForgetMemory deletes or soft-forgets a memory. The permanent flag is
// always sent; it is a real boolean, not an optional field.
func (c *Client) ForgetMemory(ctx context.Context, userKey, memoryID string, permanent bool) (*Response, error) {
	p := payload.New().
		Set("userKey", userKey).
		Set("memoryId", memoryID).
		Set("permanent", permanent)
	return c.post(ctx, "memory/forget", p)
}

// HealthCheck verifies API reachability and credentials.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	return c.post(ctx, "memory/health", payload.New().Set("ping", "test"))
}
