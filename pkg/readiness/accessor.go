package readiness

import (
	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/errors"
)

// Accessor is strongly typed access to a bound dataref. It is only handed
// out by a Monitor after the entry resolved and type-checked, so the typed
// getters below cannot hit a promotion path.
type Accessor struct {
	reg    *dataref.Registry
	handle dataref.Handle
	typ    dataref.Type
}

// Handle exposes the underlying dataref handle.
func (a *Accessor) Handle() dataref.Handle { return a.handle }

// Type returns the bound type.
func (a *Accessor) Type() dataref.Type { return a.typ }

// Get reads the current value. Scalars come back as int32, float32, or
// float64; arrays come back as a full copy.
func (a *Accessor) Get() (any, error) {
	switch a.typ {
	case dataref.TypeInt:
		return a.reg.GetInt(a.handle)
	case dataref.TypeFloat:
		return a.reg.GetFloat(a.handle)
	case dataref.TypeDouble:
		return a.reg.GetDouble(a.handle)
	case dataref.TypeFloatArray:
		n, err := a.reg.GetFloatArray(a.handle, nil, 0)
		if err != nil {
			return nil, err
		}
		out := make([]float32, n)
		if _, err := a.reg.GetFloatArray(a.handle, out, 0); err != nil {
			return nil, err
		}
		return out, nil
	case dataref.TypeIntArray:
		n, err := a.reg.GetIntArray(a.handle, nil, 0)
		if err != nil {
			return nil, err
		}
		out := make([]int32, n)
		if _, err := a.reg.GetIntArray(a.handle, out, 0); err != nil {
			return nil, err
		}
		return out, nil
	case dataref.TypeByteArray:
		n, err := a.reg.GetByteArray(a.handle, nil, 0)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		if _, err := a.reg.GetByteArray(a.handle, out, 0); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, errors.Newf("readiness.Get", errors.KindUnknown, "unsupported type %s", a.typ)
}

// Set writes a value of the bound type.
func (a *Accessor) Set(value any) error {
	const op = "readiness.Set"
	switch a.typ {
	case dataref.TypeInt:
		v, ok := value.(int32)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want int32, got %T", value)
		}
		return a.reg.SetInt(a.handle, v)
	case dataref.TypeFloat:
		v, ok := value.(float32)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want float32, got %T", value)
		}
		return a.reg.SetFloat(a.handle, v)
	case dataref.TypeDouble:
		v, ok := value.(float64)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want float64, got %T", value)
		}
		return a.reg.SetDouble(a.handle, v)
	case dataref.TypeFloatArray:
		v, ok := value.([]float32)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want []float32, got %T", value)
		}
		return a.reg.SetFloatArray(a.handle, v, 0)
	case dataref.TypeIntArray:
		v, ok := value.([]int32)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want []int32, got %T", value)
		}
		return a.reg.SetIntArray(a.handle, v, 0)
	case dataref.TypeByteArray:
		v, ok := value.([]byte)
		if !ok {
			return errors.Newf(op, errors.KindTypeMismatch, "want []byte, got %T", value)
		}
		return a.reg.SetByteArray(a.handle, v, 0)
	}
	return errors.Newf(op, errors.KindUnknown, "unsupported type %s", a.typ)
}

// Float reads a float-typed accessor directly.
func (a *Accessor) Float() (float32, error) {
	return a.reg.GetFloat(a.handle)
}

// Floats reads a float-array accessor into a fresh slice.
func (a *Accessor) Floats() ([]float32, error) {
	n, err := a.reg.GetFloatArray(a.handle, nil, 0)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	_, err = a.reg.GetFloatArray(a.handle, out, 0)
	return out, err
}
