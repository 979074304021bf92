package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedResponse = errors.New("malformed response")

// The upstream API is not consistent about envelopes: some endpoints return
// a bare JSON array, others wrap the payload in {"data": ...} or a named
// field such as {"orders": [...]}. Everything collapses to one canonical
// shape here so the core packages never branch on which shape came back.

// unmarshalList decodes a list response. keys are the endpoint-specific
// envelope fields to try before the generic "data" one.
func unmarshalList(data []byte, keys []string, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range keys {
		if raw, ok := envelope[key]; ok {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrMalformedResponse, key, err)
			}
			return nil
		}
	}
	if raw, ok := envelope["data"]; ok {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: field \"data\": %v", ErrMalformedResponse, err)
		}
		return nil
	}
	return fmt.Errorf("%w: no list payload found", ErrMalformedResponse)
}

// unmarshalObject decodes a single-object response, unwrapping a "data"
// envelope when present.
func unmarshalObject(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if raw, ok := envelope["data"]; ok {
		inner := bytes.TrimSpace(raw)
		if len(inner) > 0 && inner[0] == '{' {
			if err := json.Unmarshal(inner, out); err != nil {
				return fmt.Errorf("%w: field \"data\": %v", ErrMalformedResponse, err)
			}
			return nil
		}
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
