package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the wire format of a drag that originates outside the session,
// e.g. a library tree node: {"label": "...", "data": <opaque>}.
type Payload struct {
	Label string          `json:"label"`
	Data  json.RawMessage `json:"data"`
}

// ParsePayload decodes a drag payload. A payload without data is malformed.
func ParsePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	data := bytes.TrimSpace(p.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Payload{}, fmt.Errorf("%w: missing data", ErrMalformedPayload)
	}
	return p, nil
}

// Encode returns the JSON wire form of the payload
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// NodePayload builds the drag payload for a library node
func NodePayload(n LibraryNode) (Payload, error) {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Label: n.Label, Data: data}, nil
}
