package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/hierarchy"
	"gopkg.in/yaml.v3"
)

// Format is the text encoding of a request document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// DetectFormat picks the format from the file extension, falling back to
// the first significant byte of the content.
func DetectFormat(filename string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parser is responsible for converting request documents into configs.
// A document is either a bare aggregation body or an envelope keyed by
// the aggregation type name.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data in the given format and builds the config.
func (p *Parser) Parse(name string, data []byte, format Format) (hierarchy.Config, error) {
	b, err := p.ParseBuilder(name, data, format)
	if err != nil {
		return hierarchy.Config{}, err
	}
	return b.Build()
}

// ParseFile is Parse with the format detected from filename and content.
func (p *Parser) ParseFile(name, filename string, data []byte) (hierarchy.Config, error) {
	return p.Parse(name, data, DetectFormat(filename, data))
}

// ParseBuilder decodes data without building, so callers can adjust the
// result before the depth range is checked.
func (p *Parser) ParseBuilder(name string, data []byte, format Format) (*hierarchy.Builder, error) {
	if format == FormatYAML {
		return p.parseYAML(name, data)
	}
	if isEnvelope(data) {
		return hierarchy.ParseEnvelope(name, data)
	}
	return hierarchy.Parse(name, data)
}

func isEnvelope(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	_, ok := top[domain.TypeName]
	return ok
}

func (p *Parser) parseYAML(name string, data []byte) (*hierarchy.Builder, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", domain.ErrMalformedRequest, name, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: [%s]: empty document", domain.ErrMalformedRequest, name)
	}

	body, ok := raw[domain.TypeName]
	if !ok {
		return hierarchy.ParseMap(name, raw)
	}

	bodyMap, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: [%s]: [%s] must be an object", domain.ErrMalformedRequest, name, domain.TypeName)
	}
	b, err := hierarchy.ParseMap(name, bodyMap)
	if err != nil {
		return nil, err
	}

	for key, v := range raw {
		switch key {
		case domain.TypeName:
		case domain.FieldMeta:
			meta, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: [%s]: [meta] must be an object", domain.ErrMalformedRequest, name)
			}
			b.Metadata(meta)
		case domain.FieldAggs:
			aggs, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("%w: [%s]: [aggs]: %v", domain.ErrMalformedRequest, name, err)
			}
			b.SubAggregations(aggs)
		default:
			return nil, fmt.Errorf("%w: [%s]: unknown envelope key [%s]", domain.ErrMalformedRequest, name, key)
		}
	}
	return b, nil
}
