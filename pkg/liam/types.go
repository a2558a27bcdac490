package liam

// StatusSuccess is the status value the API reports on success.
const StatusSuccess = "Success"

// Response is a decoded API response body.
type Response struct {
	// Status is the application-level status ("Success" or other).
	Status string
	// Message is the server's message, when present.
	Message string

	body map[string]any
}

func newResponse(body map[string]any) *Response {
	r := &Response{body: body}
	if s, ok := body["status"].(string); ok {
		r.Status = s
	}
	if m, ok := body["message"].(string); ok {
		r.Message = m
	}
	return r
}

// Success reports whether the application-level status is "Success".
func (r *Response) Success() bool {
	return r.Status == StatusSuccess
}

// Field returns a top-level field of the response body.
func (r *Response) Field(key string) (any, bool) {
	v, ok := r.body[key]
	return v, ok
}

// Body returns the full decoded response body.
func (r *Response) Body() map[string]any {
	return r.body
}

// CreateMemoryRequest holds parameters for CreateMemory. Tag and
// SessionID are optional; empty values are omitted from the request body.
type CreateMemoryRequest struct {
	UserKey   string
	Content   string
	Tag       string
	SessionID string
}

// CreateMemoryWithImageRequest holds parameters for CreateMemoryWithImage.
// Image is the base64-encoded image data.
type CreateMemoryWithImageRequest struct {
	UserKey   string
	Content   string
	Image     string
	Tag       string
	SessionID string
}

// ListMemoriesRequest holds parameters for ListMemories. Query is
// optional; Limit defaults to DefaultListLimit when zero.
type ListMemoriesRequest struct {
	UserKey string
	Query   string
	Limit   int
}

// ChatRequest holds parameters for Chat. SessionID is optional.
type ChatRequest struct {
	UserKey   string
	Query     string
	SessionID string
}

// GetByTagRequest holds parameters for GetMemoriesByTag. Limit defaults
// to DefaultListLimit when zero; Offset is always sent.
type GetByTagRequest struct {
	UserKey string
	Tag     string
	Limit   int
	Offset  int
}

// MemoryInput is one unit of a CreateMemoriesBatch call. Tag and
// SessionID are optional.
type MemoryInput struct {
	Content   string
	Tag       string
	SessionID string
}
