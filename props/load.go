package props

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a property file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat is returned for file extensions or formats that have no decoder.
	ErrUnsupportedFormat = errors.New("props: unsupported format")

	// ErrNestedArray is returned for documents holding an array directly
	// inside another array. Arrays map to indexed siblings, which cannot
	// nest; wrap the inner array in a table instead.
	ErrNestedArray = errors.New("props: nested array")
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode parses a property document. The top level must be a table/object.
func Decode(data []byte, format Format) (map[string]any, error) {
	doc := make(map[string]any)
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	if err := checkArrays(doc, ""); err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return doc, nil
}

// checkArrays rejects arrays nested directly in arrays.
func checkArrays(v any, path string) error {
	switch x := v.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err := checkArrays(x[k], path+"/"+k); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range x {
			p := fmt.Sprintf("%s[%d]", path, i)
			if _, ok := elem.([]any); ok {
				return fmt.Errorf("%w at %s", ErrNestedArray, p)
			}
			if err := checkArrays(elem, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFile reads and decodes the property document at path.
func ReadFile(path string) (map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read props: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("read props %s: %w", path, err)
	}
	return doc, nil
}

// Load reads the document at path into a new root node.
func Load(path string) (*Node, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	root := NewRoot()
	Merge(root, doc)
	return root, nil
}

// Merge applies doc onto dst. Tables become child nodes with index 0, arrays
// become indexed siblings and scalars become values. Arrays nested directly
// in arrays have no node representation and are skipped (Decode rejects
// them with ErrNestedArray). Existing nodes are
// reused and a value is only assigned (and announced) when it differs from the
// current one, so re-merging an unchanged document is silent. Keys are
// visited in sorted order. Nodes absent from doc are left untouched.
func Merge(dst *Node, doc map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		name, index, ok := parseSegment(key)
		if !ok {
			continue
		}
		mergeValue(dst, name, index, doc[key])
	}
}

func mergeValue(parent *Node, name string, index int, v any) {
	switch x := v.(type) {
	case map[string]any:
		Merge(parent.GetChild(name, index, true), x)
	case []any:
		for i, elem := range x {
			if _, nested := elem.([]any); nested {
				continue
			}
			mergeValue(parent, name, index+i, elem)
		}
	case []map[string]any:
		for i, elem := range x {
			Merge(parent.GetChild(name, index+i, true), elem)
		}
	default:
		c := parent.GetChild(name, index, true)
		nv := normalize(x)
		if c.value != nil && c.value == nv {
			return
		}
		c.SetValue(nv)
	}
}
