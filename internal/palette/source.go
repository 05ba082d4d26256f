package palette

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// OptionName is the stored theme option holding the global colors.
	OptionName = "generate_settings"
	// ColorsKey is the key of the palette inside the theme option.
	ColorsKey = "global_colors"
)

// ErrUnavailable means the theme's color settings cannot be reached at all,
// as opposed to being present but empty.
var ErrUnavailable = errors.New("theme color settings unavailable")

// Source provides the current palette. Implementations are read once per
// request; callers pass the result to each renderer instead of caching it.
type Source interface {
	Load(ctx context.Context) (Palette, error)
}

// StaticSource serves a fixed palette.
type StaticSource struct {
	Palette Palette
}

func (s StaticSource) Load(ctx context.Context) (Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Palette, nil
}

// FileSource reads an exported theme-settings document. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
//
// The document is either the option itself or an object wrapping it under
// "generate_settings". Its "global_colors" entry may be a list of records or
// an object keyed by slug; key order is kept in both forms.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, s.Path)
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var p Palette
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		p, err = ParseYAMLSettings(data)
	default:
		p, err = ParseJSONSettings(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.Path, err)
	}
	return p, nil
}

// ParseJSONSettings extracts the palette from a JSON theme-settings document.
func ParseJSONSettings(data []byte) (Palette, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if wrapped, ok := doc[OptionName]; ok {
		doc = nil
		if err := json.Unmarshal(wrapped, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", OptionName, err)
		}
	}

	raw := bytes.TrimSpace(doc[ColorsKey])
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Palette{}, nil
	}

	switch raw[0] {
	case '[':
		var p Palette
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", ColorsKey, err)
		}
		return p, nil
	case '{':
		return decodeKeyedJSON(raw)
	default:
		return nil, fmt.Errorf("%s: expected list or object", ColorsKey)
	}
}

// decodeKeyedJSON walks a slug-keyed object token by token so the palette
// keeps the document's key order.
func decodeKeyedJSON(raw []byte) (Palette, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	p := Palette{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var rec ColorRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%s[%q]: %w", ColorsKey, key, err)
		}
		if rec.Slug == "" {
			rec.Slug = key
		}
		p = append(p, rec)
	}
	return p, nil
}

// ParseYAMLSettings extracts the palette from a YAML theme-settings document.
func ParseYAMLSettings(data []byte) (Palette, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return Palette{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, errors.New("settings document must be a mapping")
	}
	if wrapped := mappingValue(doc, OptionName); wrapped != nil {
		doc = wrapped
	}

	colors := mappingValue(doc, ColorsKey)
	if colors == nil || colors.Tag == "!!null" {
		return Palette{}, nil
	}

	switch colors.Kind {
	case yaml.SequenceNode:
		p := Palette{}
		if err := colors.Decode(&p); err != nil {
			return nil, fmt.Errorf("%s: %w", ColorsKey, err)
		}
		return p, nil
	case yaml.MappingNode:
		p := make(Palette, 0, len(colors.Content)/2)
		for i := 0; i+1 < len(colors.Content); i += 2 {
			key := colors.Content[i].Value
			var rec ColorRecord
			if err := colors.Content[i+1].Decode(&rec); err != nil {
				return nil, fmt.Errorf("%s[%q]: %w", ColorsKey, key, err)
			}
			if rec.Slug == "" {
				rec.Slug = key
			}
			p = append(p, rec)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%s: expected list or mapping", ColorsKey)
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
