package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// List runs req through the pipeline and decodes the response as a
// collection. The API's list endpoints answer either a bare JSON array or
// a paginated {"results": [...]} envelope; both normalize to the same
// slice here, so no consumer ever sees the difference.
func List[T any](ctx context.Context, g *Gateway, sess Session, req Request) ([]T, error) {
	body, err := g.DoRaw(ctx, sess, req)
	if err != nil {
		return nil, err
	}
	return DecodeList[T](body)
}

// DecodeList normalizes a list payload, bare or enveloped, into a slice.
func DecodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return envelope.Results, nil
}
