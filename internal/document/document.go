// Package document decodes raw analysis documents into a loosely typed tree
// and provides the total accessors the resolver and builder read it with.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format identifies the encoding of a raw document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the decoder from the file extension. Anything that is
// not explicitly YAML is treated as JSON.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode decodes raw bytes into a generic value without checking its shape.
// Objects become map[string]any, arrays []any, JSON numbers json.Number.
func Decode(name string, raw []byte) (any, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, Malformed(name, "empty document", nil)
	}

	switch DetectFormat(name) {
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, Malformed(name, "invalid YAML", err)
		}
		return normalizeYAML(v), nil
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, Malformed(name, "invalid JSON", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, Malformed(name, "invalid JSON", fmt.Errorf("unexpected data after top-level value"))
		}
		return v, nil
	}
}

// Parse decodes raw bytes and requires the top-level value to be keyed.
func Parse(name string, raw []byte) (Node, error) {
	v, err := Decode(name, raw)
	if err != nil {
		return nil, err
	}
	return Root(name, v)
}

// Root checks that v is a keyed structure and returns it as a Node.
func Root(name string, v any) (Node, error) {
	switch t := v.(type) {
	case Node:
		return t, nil
	case map[string]any:
		return Node(t), nil
	case []any:
		return nil, Malformed(name, "top-level value is an array, expected an object", nil)
	case nil:
		return nil, Malformed(name, "top-level value is null, expected an object", nil)
	default:
		return nil, Malformed(name, fmt.Sprintf("top-level value is a %T, expected an object", t), nil)
	}
}

// normalizeYAML converts yaml.v3 output into the same shapes the JSON path
// produces so that accessors only deal with one representation.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalizeYAML(child)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return m
	case []any:
		for i, child := range t {
			t[i] = normalizeYAML(child)
		}
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	default:
		return v
	}
}
