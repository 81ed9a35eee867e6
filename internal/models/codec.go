package models

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// EncodeState serializes the full Entity Store document.
func EncodeState(s *State) ([]byte, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// DecodeState parses a snapshot or backup document. Decoding starts from the
// default state so collections missing from an old document keep their
// default values, then Normalize repairs anything left nil.
func DecodeState(data []byte) (*State, error) {
	s := DefaultState()
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	s.Normalize()
	return s, nil
}
