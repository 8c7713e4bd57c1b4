package dataref

// Type identifies the declared type of a dataref entry. Values match the
// host's bitmask ABI so seed files and plugin specs stay wire-compatible.
type Type int

const (
	// TypeUnset marks a dummy entry that has not been promoted yet.
	TypeUnset Type = 0

	// TypeInt is a single 32-bit integer.
	TypeInt Type = 1
	// TypeFloat is a single 32-bit float.
	TypeFloat Type = 2
	// TypeDouble is a single 64-bit float.
	TypeDouble Type = 4
	// TypeFloatArray is an array of 32-bit floats.
	TypeFloatArray Type = 8
	// TypeIntArray is an array of 32-bit integers.
	TypeIntArray Type = 16
	// TypeByteArray is an array of bytes.
	TypeByteArray Type = 32
)

// IsArray reports whether t is one of the array types.
func (t Type) IsArray() bool {
	return t == TypeFloatArray || t == TypeIntArray || t == TypeByteArray
}

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeFloatArray:
		return "float-array"
	case TypeIntArray:
		return "int-array"
	case TypeByteArray:
		return "byte-array"
	case TypeUnset:
		return "unset"
	default:
		return "invalid"
	}
}

// Handle is an opaque, non-owning reference to a dataref entry. Handles are
// lookup-only: the registry exclusively owns the entries behind them. The
// zero Handle is invalid.
type Handle struct {
	name string
}

// Name returns the path the handle resolves through.
func (h Handle) Name() string { return h.name }

// Valid reports whether the handle refers to an entry.
func (h Handle) Valid() bool { return h.name != "" }

// Info is a point-in-time snapshot of an entry's metadata.
type Info struct {
	Name     string
	Type     Type
	Writable bool
	IsArray  bool
	Size     int
	Dummy    bool
}
