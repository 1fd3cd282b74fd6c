package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// patch holds a decoded PATCH body. Keeping the raw JSON per field lets
// handlers distinguish an absent field (leave unchanged) from an explicit
// null (clear a nullable field).
type patch map[string]json.RawMessage

func decodePatch(body io.Reader) (patch, error) {
	var p patch
	dec := json.NewDecoder(body)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	return p, nil
}

func (p patch) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p patch) isNull(key string) bool {
	raw, ok := p[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (p patch) string(key string) (string, error) {
	var s string
	if err := json.Unmarshal(p[key], &s); err != nil {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}

func (p patch) int64(key string) (int64, error) {
	var n int64
	if err := json.Unmarshal(p[key], &n); err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
