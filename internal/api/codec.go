package api

import (
	"encoding/json"
	"fmt"
)

// Codec carries plain Go structs as JSON on the Connect protocol.
// It registers under the name "json", replacing the protobuf JSON codec.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return raw, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero value.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
