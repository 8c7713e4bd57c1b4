package dataref

import (
	"github.com/speedsim/simless/pkg/errors"
)

// resolve returns the entry behind h, promoting a dummy entry to typ on the
// way. The promoted flag tells the caller a promotion happened so exactly one
// change notification can be fired per triggering access: a read that
// promotes notifies for the promotion, a write that promotes notifies once
// for the write only.
func (r *Registry) resolve(op string, h Handle, typ Type) (e *entry, promoted bool, err error) {
	e, ok := r.entries[h.name]
	if !ok || h.name == "" {
		return nil, false, errors.Newf(op, errors.KindUnknown, "invalid dataref handle %q", h.name)
	}
	if e.dummy {
		e.dummy = false
		e.typ = typ
		r.logger.Debug("dataref promoted", "path", e.name, "type", typ.String())
		return e, true, nil
	}
	if e.typ != typ {
		return nil, false, errors.Newf(op, errors.KindTypeMismatch,
			"%s: accessor type %s against promoted type %s", e.name, typ, e.typ)
	}
	return e, false, nil
}

func (r *Registry) checkWritable(op string, e *entry) error {
	if !e.writable {
		return errors.Newf(op, errors.KindPermission, "%s: dataref is read-only", e.name)
	}
	return nil
}

// GetInt reads an int entry, promoting a dummy entry to int first.
func (r *Registry) GetInt(h Handle) (int32, error) {
	e, promoted, err := r.resolve("dataref.GetInt", h, TypeInt)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	return e.scalarInt, nil
}

// SetInt writes an int entry.
func (r *Registry) SetInt(h Handle, v int32) error {
	const op = "dataref.SetInt"
	e, _, err := r.resolve(op, h, TypeInt)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	e.scalarInt = v
	r.notifyChanged(e)
	return nil
}

// GetFloat reads a float entry, promoting a dummy entry to float first.
func (r *Registry) GetFloat(h Handle) (float32, error) {
	e, promoted, err := r.resolve("dataref.GetFloat", h, TypeFloat)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	return e.scalarFloat, nil
}

// SetFloat writes a float entry.
func (r *Registry) SetFloat(h Handle, v float32) error {
	const op = "dataref.SetFloat"
	e, _, err := r.resolve(op, h, TypeFloat)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	e.scalarFloat = v
	r.notifyChanged(e)
	return nil
}

// GetDouble reads a double entry, promoting a dummy entry to double first.
func (r *Registry) GetDouble(h Handle) (float64, error) {
	e, promoted, err := r.resolve("dataref.GetDouble", h, TypeDouble)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	return e.scalarDouble, nil
}

// SetDouble writes a double entry.
func (r *Registry) SetDouble(h Handle, v float64) error {
	const op = "dataref.SetDouble"
	e, _, err := r.resolve(op, h, TypeDouble)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	e.scalarDouble = v
	r.notifyChanged(e)
	return nil
}

// GetFloatArray copies elements starting at offset into out and returns the
// number copied. A nil out queries the current array length. Reading past the
// end copies what exists.
func (r *Registry) GetFloatArray(h Handle, out []float32, offset int) (int, error) {
	e, promoted, err := r.resolve("dataref.GetFloatArray", h, TypeFloatArray)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	if out == nil {
		return len(e.floats), nil
	}
	if offset >= len(e.floats) || offset < 0 {
		return 0, nil
	}
	return copy(out, e.floats[offset:]), nil
}

// SetFloatArray writes vals into the entry's backing array starting at
// offset. The backing array is spliced in place: a write past the current
// end grows the array, zero-filling any gap, so other holders of the same
// entry observe the update.
func (r *Registry) SetFloatArray(h Handle, vals []float32, offset int) error {
	const op = "dataref.SetFloatArray"
	e, _, err := r.resolve(op, h, TypeFloatArray)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	if offset < 0 {
		return errors.Newf(op, errors.KindConfig, "%s: negative offset %d", e.name, offset)
	}
	if end := offset + len(vals); end > len(e.floats) {
		e.floats = append(e.floats, make([]float32, end-len(e.floats))...)
	}
	copy(e.floats[offset:], vals)
	r.notifyChanged(e)
	return nil
}

// GetIntArray copies elements starting at offset into out and returns the
// number copied. A nil out queries the current array length.
func (r *Registry) GetIntArray(h Handle, out []int32, offset int) (int, error) {
	e, promoted, err := r.resolve("dataref.GetIntArray", h, TypeIntArray)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	if out == nil {
		return len(e.ints), nil
	}
	if offset >= len(e.ints) || offset < 0 {
		return 0, nil
	}
	return copy(out, e.ints[offset:]), nil
}

// SetIntArray writes vals into the backing array starting at offset,
// growing and zero-filling past the current end.
func (r *Registry) SetIntArray(h Handle, vals []int32, offset int) error {
	const op = "dataref.SetIntArray"
	e, _, err := r.resolve(op, h, TypeIntArray)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	if offset < 0 {
		return errors.Newf(op, errors.KindConfig, "%s: negative offset %d", e.name, offset)
	}
	if end := offset + len(vals); end > len(e.ints) {
		e.ints = append(e.ints, make([]int32, end-len(e.ints))...)
	}
	copy(e.ints[offset:], vals)
	r.notifyChanged(e)
	return nil
}

// GetByteArray copies bytes starting at offset into out and returns the
// number copied. A nil out queries the current array length.
func (r *Registry) GetByteArray(h Handle, out []byte, offset int) (int, error) {
	e, promoted, err := r.resolve("dataref.GetByteArray", h, TypeByteArray)
	if err != nil {
		return 0, err
	}
	if promoted {
		r.notifyChanged(e)
	}
	if out == nil {
		return len(e.bytes), nil
	}
	if offset >= len(e.bytes) || offset < 0 {
		return 0, nil
	}
	return copy(out, e.bytes[offset:]), nil
}

// SetByteArray writes vals into the backing array starting at offset,
// growing and zero-filling past the current end.
func (r *Registry) SetByteArray(h Handle, vals []byte, offset int) error {
	const op = "dataref.SetByteArray"
	e, _, err := r.resolve(op, h, TypeByteArray)
	if err != nil {
		return err
	}
	if err := r.checkWritable(op, e); err != nil {
		return err
	}
	if offset < 0 {
		return errors.Newf(op, errors.KindConfig, "%s: negative offset %d", e.name, offset)
	}
	if end := offset + len(vals); end > len(e.bytes) {
		e.bytes = append(e.bytes, make([]byte, end-len(e.bytes))...)
	}
	copy(e.bytes[offset:], vals)
	r.notifyChanged(e)
	return nil
}
