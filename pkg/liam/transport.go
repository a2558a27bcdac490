package liam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/liam-go/pkg/payload"
)

const instrumentationName = "github.com/fyrsmithlabs/liam-go/pkg/liam"

var tracer = otel.Tracer(instrumentationName)

// post sends one signed (or plain) request to {baseURL}/{endpoint}.
//
// The payload is marshaled exactly once; the signature is computed over
// those bytes and the same bytes are sent as the body, so what the server
// verifies is what it received. HTTP status >= 400 and non-JSON bodies
// become *APIError; network failures propagate from the transport as-is.
func (c *Client) post(ctx context.Context, endpoint string, p *payload.Payload) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	ctx, span := tracer.Start(ctx, "liam.request",
		trace.WithAttributes(attribute.String("liam.endpoint", endpoint)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("X-Request-ID", requestID)
	if c.signer != nil {
		sig, err := c.signer.Sign(body)
		if err != nil {
			return nil, fmt.Errorf("sign request: %w", err)
		}
		req.Header.Set("signature", sig)
	}

	start := time.Now()
	c.metrics.requestStarted(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.requestFinished(ctx, endpoint, 0, time.Since(start))
		span.RecordError(err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	c.metrics.requestFinished(ctx, endpoint, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if readErr != nil {
		return nil, fmt.Errorf("read response: %w", readErr)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid JSON response: %s", truncate(string(raw), 200)),
		}
	}

	r := newResponse(decoded)
	if resp.StatusCode >= 400 {
		msg := r.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Body: decoded}
	}

	c.logger.Debug("request complete",
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode),
		zap.String("status", r.Status),
		zap.Duration("duration", time.Since(start)))
	return r, nil
}

// truncate shortens s for error messages and logs, cutting on a rune
// boundary so non-ASCII bodies never produce an invalid-UTF-8 tail.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
