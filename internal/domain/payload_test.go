package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		label   string
		data    string
		wantErr bool
	}{
		{name: "string data", raw: `{"label":"Module 1","data":"/lib/module1"}`, label: "Module 1", data: `"/lib/module1"`},
		{name: "object data", raw: `{"label":"x","data":{"id":7}}`, label: "x", data: `{"id":7}`},
		{name: "missing label", raw: `{"data":1}`, label: "", data: `1`},
		{name: "missing data", raw: `{"label":"x"}`, wantErr: true},
		{name: "null data", raw: `{"label":"x","data":null}`, wantErr: true},
		{name: "not json", raw: `label=x`, wantErr: true},
		{name: "wrong shape", raw: `["x"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePayload([]byte(tt.raw))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, p.Label)
			assert.JSONEq(t, tt.data, string(p.Data))
		})
	}
}

func TestNodePayloadRoundTrip(t *testing.T) {
	node := LibraryNode{Key: "k", Label: "Basics", Data: "/lib/Basics"}

	p, err := NodePayload(node)
	require.NoError(t, err)
	raw, err := p.Encode()
	require.NoError(t, err)

	parsed, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "Basics", parsed.Label)

	var path string
	require.NoError(t, json.Unmarshal(parsed.Data, &path))
	assert.Equal(t, "/lib/Basics", path)
}
