// Package seed loads dataref seed files: YAML documents that pre-register
// typed datarefs before a run, so plugins find real entries instead of
// promoting dummies. Seeds mirror what the host exposes at startup.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/errors"
)

// Entry describes one dataref to pre-register.
type Entry struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Writable bool      `yaml:"writable"`
	Int      *int32    `yaml:"int,omitempty"`
	Float    *float64  `yaml:"float,omitempty"`
	Floats   []float32 `yaml:"floats,omitempty"`
	Ints     []int32   `yaml:"ints,omitempty"`
	Bytes    string    `yaml:"bytes,omitempty"`
}

// File is the root of a seed document.
type File struct {
	Datarefs []Entry `yaml:"datarefs"`
}

var typeNames = map[string]dataref.Type{
	"int":         dataref.TypeInt,
	"float":       dataref.TypeFloat,
	"double":      dataref.TypeDouble,
	"float-array": dataref.TypeFloatArray,
	"int-array":   dataref.TypeIntArray,
	"byte-array":  dataref.TypeByteArray,
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap("seed.Load", errors.KindConfig, err)
	}
	return Parse(data)
}

// LoadOptional reads a seed file if present; a missing file yields an empty
// seed, not an error.
func LoadOptional(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, errors.Wrap("seed.LoadOptional", errors.KindConfig, err)
	}
	return Parse(data)
}

// Parse decodes a seed document and validates every entry.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap("seed.Parse", errors.KindConfig, err)
	}
	for i, e := range f.Datarefs {
		if e.Name == "" {
			return nil, errors.Newf("seed.Parse", errors.KindConfig, "entry %d has no name", i)
		}
		if _, ok := typeNames[e.Type]; !ok {
			return nil, errors.Newf("seed.Parse", errors.KindConfig, "entry %q: unknown type %q", e.Name, e.Type)
		}
	}
	return &f, nil
}

// Apply registers every entry in the registry with its declared type and
// default value. Registration is idempotent, so applying the same seed twice
// is harmless.
func (f *File) Apply(reg *dataref.Registry) error {
	for _, e := range f.Datarefs {
		typ := typeNames[e.Type]
		def, err := e.defaultValue(typ)
		if err != nil {
			return err
		}
		if _, err := reg.Register(e.Name, typ, e.Writable, def); err != nil {
			return fmt.Errorf("seed %q: %w", e.Name, err)
		}
	}
	return nil
}

func (e Entry) defaultValue(typ dataref.Type) (any, error) {
	switch typ {
	case dataref.TypeInt:
		if e.Int != nil {
			return *e.Int, nil
		}
		return int32(0), nil
	case dataref.TypeFloat:
		if e.Float != nil {
			return float32(*e.Float), nil
		}
		return float32(0), nil
	case dataref.TypeDouble:
		if e.Float != nil {
			return *e.Float, nil
		}
		return float64(0), nil
	case dataref.TypeFloatArray:
		return e.Floats, nil
	case dataref.TypeIntArray:
		return e.Ints, nil
	case dataref.TypeByteArray:
		return []byte(e.Bytes), nil
	default:
		return nil, errors.Newf("seed.Apply", errors.KindConfig, "entry %q: unsupported type", e.Name)
	}
}
