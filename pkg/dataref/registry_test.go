package dataref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/errors"
)

func TestFindCreatesDummy(t *testing.T) {
	r := NewRegistry(nil)

	h := r.Find("sim/test/auto_float")
	require.True(t, h.Valid())

	info, ok := r.Info(h)
	require.True(t, ok)
	assert.True(t, info.Dummy)
	assert.Equal(t, TypeUnset, info.Type)

	// Repeated finds resolve to the same dummy entry.
	h2 := r.Find("sim/test/auto_float")
	info2, ok := r.Info(h2)
	require.True(t, ok)
	assert.Equal(t, info, info2)
	assert.Equal(t, 1, r.Len())
}

func TestPromotionOnFirstTypedRead(t *testing.T) {
	r := NewRegistry(nil)

	var notified []Info
	r.Subscribe(func(info Info) { notified = append(notified, info) })

	h := r.Find("sim/test/auto_float")
	v, err := r.GetFloat(h)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	info, _ := r.Info(h)
	assert.False(t, info.Dummy)
	assert.Equal(t, TypeFloat, info.Type)

	// Exactly one notification for the promotion.
	require.Len(t, notified, 1)
	assert.Equal(t, "sim/test/auto_float", notified[0].Name)

	// Subsequent reads never re-promote or re-notify.
	_, err = r.GetFloat(h)
	require.NoError(t, err)
	assert.Len(t, notified, 1)
}

func TestPromotionTypeFixedForLife(t *testing.T) {
	r := NewRegistry(nil)

	h := r.Find("sim/test/typed")
	_, err := r.GetFloat(h)
	require.NoError(t, err)

	// A different accessor type is a contract violation, not a coercion.
	_, err = r.GetInt(h)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))

	// Double and float are distinct types.
	_, err = r.GetDouble(h)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindTypeMismatch))
}

func TestPromotionByWriteNotifiesOnce(t *testing.T) {
	r := NewRegistry(nil)

	var count int
	r.Subscribe(func(Info) { count++ })

	h := r.Find("sim/test/shared")
	require.NoError(t, r.SetFloat(h, 123.456))

	// A write that triggers promotion fires one notification, not two.
	assert.Equal(t, 1, count)

	v, err := r.GetFloat(h)
	require.NoError(t, err)
	assert.Equal(t, float32(123.456), v)
	assert.Equal(t, 1, count)
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry(nil)

	h, err := r.Register("sim/test/oat", TypeFloat, true, float32(10))
	require.NoError(t, err)

	// Re-registration returns the existing entry unchanged.
	h2, err := r.Register("sim/test/oat", TypeInt, false, int32(99))
	require.NoError(t, err)
	assert.Equal(t, h, h2)

	v, err := r.GetFloat(h2)
	require.NoError(t, err)
	assert.Equal(t, float32(10), v)
}

func TestRegisterRejectsMismatchedDefault(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Register("sim/test/bad", TypeFloat, true, "not a float")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestSetReadOnlyFailsWithPermission(t *testing.T) {
	r := NewRegistry(nil)

	h, err := r.Register("sim/test/ro", TypeInt, false, int32(7))
	require.NoError(t, err)

	err = r.SetInt(h, 8)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindPermission))

	v, err := r.GetInt(h)
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestWriteToDummyPermitted(t *testing.T) {
	r := NewRegistry(nil)

	h := r.Find("sim/test/dummy_write")
	require.NoError(t, r.SetInt(h, 42))

	v, err := r.GetInt(h)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
}

func TestLookupDoesNotCreate(t *testing.T) {
	r := NewRegistry(nil)

	_, ok := r.Lookup("sim/test/absent")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	r.Find("sim/test/present")
	h, ok := r.Lookup("sim/test/present")
	assert.True(t, ok)
	assert.True(t, h.Valid())
}

func TestInvalidHandle(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.GetFloat(Handle{})
	require.Error(t, err)
}
