// Package payload builds ordered, canonically serialized JSON request bodies.
//
// The LIAM API authenticates requests by verifying an ECDSA signature over
// the exact bytes of the request body, so the body must serialize the same
// way every time it is built. Payload guarantees that: keys marshal in
// insertion order, the encoding is compact (no inserted whitespace), and
// HTML escaping is disabled. The server agrees on the insertion-order rule
// out of band.
//
// Optional request fields are expressed by not calling Set at all. Inserting
// an explicit null is a different byte sequence and therefore a different
// signature.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is an ordered string-keyed JSON object.
type Payload struct {
	keys   []string
	values map[string]any
}

// New returns an empty payload.
func New() *Payload {
	return &Payload{values: make(map[string]any)}
}

// Set adds key with value, or overwrites the value if the key is already
// present. Overwriting keeps the key's original position so the canonical
// serialization stays stable. Returns the payload for chaining. The zero
// value is ready to use; New is a convenience.
func (p *Payload) Set(key string, value any) *Payload {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of keys.
func (p *Payload) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

// MarshalJSON serializes the payload canonically: compact, insertion-order
// keys, no HTML escaping. Marshaling the same payload twice yields
// byte-identical output.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, key); err != nil {
			return nil, fmt.Errorf("encode key %q: %w", key, err)
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, p.values[key]); err != nil {
			return nil, fmt.Errorf("encode value for %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue writes v to buf without HTML escaping and without the
// trailing newline json.Encoder appends.
func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	b := tmp.Bytes()
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	_, err := buf.Write(b)
	return err
}
