package liam

import (
	"context"

	"github.com/fyrsmithlabs/liam-go/pkg/payload"
)

// ListTags lists all tags a user has applied to memories.
func (c *Client) ListTags(ctx context.Context, userKey string) (*Response, error) {
	return c.post(ctx, "memory/list-tags", payload.New().Set("userKey", userKey))
}

// AddTag adds a tag to an existing memory.
func (c *Client) AddTag(ctx context.Context, userKey, memoryID, tag string) (*Response, error) {
	p := payload.New().
		Set("userKey", userKey).
		Set("memoryId", memoryID).
		Set("tag", tag)
	return c.post(ctx, "memory/add-tag", p)
}

// GetMemoriesByTag retrieves memories carrying a tag, paginated by
// Limit/Offset. Both are always sent.
func (c *Client) GetMemoriesByTag(ctx context.Context, req GetByTagRequest) (*Response, error) {
	limit := req.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	p := payload.New().
		Set("userKey", req.UserKey).
		Set("tag", req.Tag).
		Set("limit", limit).
		Set("offset", req.Offset)
	return c.post(ctx, "memory/get-by-tag", p)
}

// ChangeTag renames a tag across all memories carrying it.
func (c *Client) ChangeTag(ctx context.Context, userKey, oldTag, newTag string) (*Response, error) {
	p := payload.New().
		Set("userKey", userKey).
		Set("oldTag", oldTag).
		Set("newTag", newTag)
	return c.post(ctx, "memory/change-tag", p)
}
