// Package json wraps request-body decoding.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON decodes exactly one JSON value from the decoder. Trailing
// content after the value is an error so requests with concatenated
// bodies are rejected.
func DecodeJSON(dst any, decoder *json.Decoder) error {
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected content after JSON value: %w", err)
	}
	return nil
}
