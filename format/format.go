package format

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/signadot/ydoc/hostval"
	"github.com/signadot/ydoc/ir"
)

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"yml":  YAMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// ForFile returns the format of a file name by its suffix, defaulting to
// def.
func ForFile(name string, def Format) Format {
	switch filepath.Ext(name) {
	case ".json":
		return JSONFormat
	case ".yaml", ".yml":
		return YAMLFormat
	}
	return def
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case YAMLFormat:
		return ".yaml"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

// Decode parses d into host values.  JSON integers decode to int64.
func (f Format) Decode(d []byte) (any, error) {
	switch f {
	case JSONFormat:
		n, err := ir.FromJSON(d)
		if err != nil {
			return nil, err
		}
		return hostval.Decode(n), nil
	case YAMLFormat:
		var v any
		if err := yaml.Unmarshal(d, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ir.ErrParse, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
}

// DecodeNode parses d into a node.
func (f Format) DecodeNode(d []byte) (*ir.Node, error) {
	if f == JSONFormat {
		return ir.FromJSON(d)
	}
	v, err := f.Decode(d)
	if err != nil {
		return nil, err
	}
	return hostval.EncodeErr(v)
}

// Encode renders v, which must be encodable by hostval.
func (f Format) Encode(v any) ([]byte, error) {
	n, err := hostval.EncodeErr(v)
	if err != nil {
		return nil, err
	}
	switch f {
	case JSONFormat:
		return n.MarshalJSON()
	case YAMLFormat:
		return yaml.Marshal(hostval.Decode(n))
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{YAMLFormat, JSONFormat}
}
