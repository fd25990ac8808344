package library

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope metadata written by Export.
const (
	AppName         = "promptlib"
	EnvelopeVersion = "1.0.0"
)

// ExportMeta is the metadata block of an export envelope.
type ExportMeta struct {
	App        string `json:"app"`
	ExportedAt string `json:"exportedAt"`
	Version    string `json:"version"`
}

// Envelope wraps a library for export.
type Envelope struct {
	Meta ExportMeta `json:"meta"`
	Data *Library   `json:"data"`
}

// NewEnvelope wraps l with metadata stamped at exportedAt.
func NewEnvelope(l *Library, exportedAt string) *Envelope {
	return &Envelope{
		Meta: ExportMeta{
			App:        AppName,
			ExportedAt: exportedAt,
			Version:    EnvelopeVersion,
		},
		Data: l.normalized(),
	}
}

// Parse decodes raw JSON into a generic value suitable for Validate.
func Parse(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Unwrap returns the "data" member when v is an object that has one (an
// export envelope), and v itself otherwise.
func Unwrap(v any) any {
	if obj, ok := v.(map[string]any); ok {
		if data, ok := obj["data"]; ok {
			return data
		}
	}
	return v
}

// FromValue converts a validated generic value into a typed Library.
func FromValue(v any) (*Library, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encode library: %w", err)
	}
	l := &Library{}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return l, nil
}

// ToValue converts a typed Library into its generic JSON form.
func ToValue(l *Library) (any, error) {
	data, err := json.Marshal(l.normalized())
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Encode renders l the way the canonical file is stored.
func Encode(l *Library) ([]byte, error) {
	return MarshalIndent(l.normalized())
}

// MarshalIndent writes v as JSON with a two-space indent and without HTML
// escaping, so "<PASTE HERE>" and non-ASCII text stay literal.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
