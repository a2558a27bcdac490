package liam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemoriesBatch_OrderedPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		if body["content"] == "poison" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"status":"Error","message":"content rejected"}`))
			return
		}
		_, _ = w.Write([]byte(fmt.Sprintf(`{"status":"Success","echo":%q}`, body["content"])))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	memories := []MemoryInput{
		{Content: "one", Tag: "a"},
		{Content: "two"},
		{Content: "poison"},
		{Content: "four"},
		{Content: "five", SessionID: "sess"},
	}

	results := c.CreateMemoriesBatch(context.Background(), "user_1", memories, 3)
	require.Len(t, results, 5)

	require.True(t, results[2].Failed())
	var apiErr *APIError
	require.ErrorAs(t, results[2].Err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)

	for _, i := range []int{0, 1, 3, 4} {
		require.False(t, results[i].Failed(), "item %d", i)
		echo, ok := results[i].Value.Field("echo")
		require.True(t, ok)
		assert.Equal(t, memories[i].Content, echo)
	}
}

func TestCreateMemoriesBatch_ConcurrencyCeiling(t *testing.T) {
	const limit = 2
	var inFlight, maxInFlight int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			prev := atomic.LoadInt64(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt64(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Success"}`))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	memories := make([]MemoryInput, 10)
	for i := range memories {
		memories[i] = MemoryInput{Content: fmt.Sprintf("memory %d", i)}
	}

	results := c.CreateMemoriesBatch(context.Background(), "user_1", memories, limit)
	require.Len(t, results, 10)
	for i, r := range results {
		require.False(t, r.Failed(), "item %d", i)
	}
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(limit))
}

func TestCreateMemoriesBatch_Empty(t *testing.T) {
	c, requests := newTestClient(t)

	results := c.CreateMemoriesBatch(context.Background(), "user_1", nil, 10)
	assert.Empty(t, results)
	assert.Empty(t, requests(), "empty batch must not hit the network")
}

func TestGetAllTagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		if body["tag"] == "forbidden" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":"Error","message":"no access"}`))
			return
		}
		_, _ = w.Write([]byte(fmt.Sprintf(`{"status":"Success","tag":%q}`, body["tag"])))
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	defer c.Close()

	tags := []string{"work", "forbidden", "travel"}
	results := c.GetAllTagged(context.Background(), "user_1", tags, 2)

	require.Len(t, results, 3)
	for _, tag := range tags {
		_, ok := results[tag]
		require.True(t, ok, "missing tag %q", tag)
	}

	assert.False(t, results["work"].Failed())
	assert.False(t, results["travel"].Failed())
	got, ok := results["work"].Value.Field("tag")
	require.True(t, ok)
	assert.Equal(t, "work", got)

	require.True(t, results["forbidden"].Failed())
	var apiErr *APIError
	require.ErrorAs(t, results["forbidden"].Err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
