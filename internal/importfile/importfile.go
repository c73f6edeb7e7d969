// Package importfile reads category and brand import documents.
package importfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalogctl/internal/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrMalformed     = errors.New("malformed import document")
	ErrInvalidRecord = errors.New("invalid import record")
)

// Format is the encoding of an import document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	categoriesField = "categories"
	brandsField     = "brands"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFromPath picks the format from the file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadCategories loads and validates a category document from disk
func ReadCategories(path string) ([]CategoryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return ParseCategories(data, FormatFromPath(path))
}

// ParseCategories decodes a document holding a "categories" collection, or
// a bare list of category records
func ParseCategories(data []byte, format Format) ([]CategoryRecord, error) {
	var records []CategoryRecord
	if err := decode(data, format, categoriesField, &records); err != nil {
		return nil, err
	}

	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, recordError(i, r.ID, err)
		}
	}

	return records, nil
}

// ReadBrands loads and validates a brand document from disk
func ReadBrands(path string) ([]BrandRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}
	return ParseBrands(data, FormatFromPath(path))
}

// ParseBrands decodes a flat list of brand records, or a document holding
// a "brands" collection. Records carrying the undetected brand id are not
// validated since they are never stored.
func ParseBrands(data []byte, format Format) ([]BrandRecord, error) {
	var records []BrandRecord
	if err := decode(data, format, brandsField, &records); err != nil {
		return nil, err
	}

	for i, r := range records {
		if r.ID == domain.UndetectedBrandID {
			continue
		}
		if err := validate.Struct(r); err != nil {
			return nil, recordError(i, r.ID, err)
		}
	}

	return records, nil
}

func recordError(index int, id int64, err error) error {
	var fields []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
	} else {
		fields = append(fields, err.Error())
	}
	return fmt.Errorf("%w: record %d (id=%d): %s", ErrInvalidRecord, index, id, strings.Join(fields, ", "))
}

func decode(data []byte, format Format, field string, out interface{}) error {
	switch format {
	case FormatYAML:
		return decodeYAML(data, field, out)
	case FormatJSON:
		return decodeJSON(data, field, out)
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrMalformed, format)
	}
}

func decodeJSON(data []byte, field string, out interface{}) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty document", ErrMalformed)
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil
	case '{':
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw, ok := doc[field]
		if !ok {
			return fmt.Errorf("%w: missing %q field", ErrMalformed, field)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, field, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: expected a JSON object or array", ErrMalformed)
	}
}

func decodeYAML(data []byte, field string, out interface{}) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("%w: empty document", ErrMalformed)
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value != field {
				continue
			}
			if err := node.Content[i+1].Decode(out); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformed, field, err)
			}
			return nil
		}
		return fmt.Errorf("%w: missing %q field", ErrMalformed, field)
	default:
		return fmt.Errorf("%w: expected a YAML mapping or sequence", ErrMalformed)
	}
}
