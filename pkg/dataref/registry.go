package dataref

import (
	"log/slog"

	"github.com/speedsim/simless/pkg/errors"
)

// entry is the registry-owned state behind a Handle. While dummy is true the
// type and value fields are placeholders; promotion fixes the type for the
// entry's lifetime.
type entry struct {
	name     string
	typ      Type
	writable bool
	dummy    bool
	size     int

	scalarInt    int32
	scalarFloat  float32
	scalarDouble float64
	floats       []float32
	ints         []int32
	bytes        []byte
}

func (e *entry) info() Info {
	size := e.size
	switch e.typ {
	case TypeFloatArray:
		size = len(e.floats)
	case TypeIntArray:
		size = len(e.ints)
	case TypeByteArray:
		size = len(e.bytes)
	}
	return Info{
		Name:     e.name,
		Type:     e.typ,
		Writable: e.writable,
		IsArray:  e.typ.IsArray(),
		Size:     size,
		Dummy:    e.dummy,
	}
}

// Registry holds all dataref entries for one harness run.
type Registry struct {
	entries map[string]*entry
	notify  func(Info)
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger means slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Subscribe installs the change-notification subscriber. There is a single
// notification channel per registry; a second call replaces the previous
// subscriber, and nil removes it. The subscriber fires once per successful
// set and once per promotion.
func (r *Registry) Subscribe(fn func(Info)) {
	r.notify = fn
}

func (r *Registry) notifyChanged(e *entry) {
	if r.notify != nil {
		r.notify(e.info())
	}
}

// Register creates a typed entry with the given default value. Registration
// is idempotent: if name already exists — real or dummy — the existing entry
// is returned unchanged. The default's Go type must suit typ:
// int32 for TypeInt, float32 for TypeFloat, float64 for TypeDouble,
// []float32, []int32, or []byte for the array types. A nil default yields a
// zero value (arrays of length zero).
func (r *Registry) Register(name string, typ Type, writable bool, def any) (Handle, error) {
	const op = "dataref.Register"

	if name == "" {
		return Handle{}, errors.New(op, errors.KindConfig, "empty dataref path")
	}
	if _, ok := r.entries[name]; ok {
		return Handle{name: name}, nil
	}

	e := &entry{name: name, typ: typ, writable: writable, size: 1}
	switch typ {
	case TypeInt:
		if def != nil {
			v, ok := def.(int32)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type int", name, def)
			}
			e.scalarInt = v
		}
	case TypeFloat:
		if def != nil {
			v, ok := def.(float32)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type float", name, def)
			}
			e.scalarFloat = v
		}
	case TypeDouble:
		if def != nil {
			v, ok := def.(float64)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type double", name, def)
			}
			e.scalarDouble = v
		}
	case TypeFloatArray:
		if def != nil {
			v, ok := def.([]float32)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type float-array", name, def)
			}
			e.floats = append([]float32(nil), v...)
		}
		e.size = len(e.floats)
	case TypeIntArray:
		if def != nil {
			v, ok := def.([]int32)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type int-array", name, def)
			}
			e.ints = append([]int32(nil), v...)
		}
		e.size = len(e.ints)
	case TypeByteArray:
		if def != nil {
			v, ok := def.([]byte)
			if !ok {
				return Handle{}, errors.Newf(op, errors.KindConfig, "%s: default %T does not match type byte-array", name, def)
			}
			e.bytes = append([]byte(nil), v...)
		}
		e.size = len(e.bytes)
	default:
		return Handle{}, errors.Newf(op, errors.KindConfig, "%s: unsupported type %d", name, int(typ))
	}

	r.entries[name] = e
	r.logger.Debug("dataref registered", "path", name, "type", typ.String(), "writable", writable)
	r.notifyChanged(e)
	return Handle{name: name}, nil
}

// Find resolves a name to a handle. Unknown names are backed by a new dummy
// entry — untyped, writable, promoted on first typed access. Find never fails
// and never blocks.
func (r *Registry) Find(name string) Handle {
	if _, ok := r.entries[name]; !ok {
		r.entries[name] = &entry{name: name, dummy: true, writable: true}
		r.logger.Debug("dataref dummy created", "path", name)
	}
	return Handle{name: name}
}

// Lookup returns a handle for name without creating a dummy entry.
func (r *Registry) Lookup(name string) (Handle, bool) {
	if _, ok := r.entries[name]; !ok {
		return Handle{}, false
	}
	return Handle{name: name}, true
}

// Info returns the metadata snapshot for a handle.
func (r *Registry) Info(h Handle) (Info, bool) {
	e, ok := r.entries[h.name]
	if !ok {
		return Info{}, false
	}
	return e.info(), true
}

// Len returns the number of entries, dummies included.
func (r *Registry) Len() int { return len(r.entries) }
