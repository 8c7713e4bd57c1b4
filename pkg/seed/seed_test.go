package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedsim/simless/pkg/dataref"
	"github.com/speedsim/simless/pkg/errors"
)

const sample = `
datarefs:
  - name: sim/cockpit2/temperature/outside_air_temp_degc
    type: float
    writable: true
    float: 10.0
  - name: sim/cockpit2/electrical/bus_volts
    type: float-array
    writable: true
    floats: [0, 0, 0, 0]
  - name: sim/aircraft/view/acf_tailnum
    type: byte-array
    bytes: N123AB
  - name: sim/time/paused
    type: int
    int: 1
`

func TestParseAndApply(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, f.Datarefs, 4)

	reg := dataref.NewRegistry(nil)
	require.NoError(t, f.Apply(reg))
	assert.Equal(t, 4, reg.Len())

	h, ok := reg.Lookup("sim/cockpit2/temperature/outside_air_temp_degc")
	require.True(t, ok)
	got, err := reg.GetFloat(h)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got, 1e-6)

	info, ok := reg.Info(reg.Find("sim/cockpit2/electrical/bus_volts"))
	require.True(t, ok)
	assert.Equal(t, dataref.TypeFloatArray, info.Type)
	assert.Equal(t, 4, info.Size)
	assert.False(t, info.Dummy)
}

func TestApplyIsIdempotent(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	reg := dataref.NewRegistry(nil)
	require.NoError(t, f.Apply(reg))

	// Mutate, reapply, value must survive.
	h := reg.Find("sim/time/paused")
	require.NoError(t, reg.SetInt(h, 0))
	require.NoError(t, f.Apply(reg))

	v, err := reg.GetInt(h)
	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := Parse([]byte("datarefs:\n  - name: a/b\n    type: quaternion\n"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestParseRejectsMissingName(t *testing.T) {
	_, err := Parse([]byte("datarefs:\n  - type: int\n"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
}

func TestLoadOptionalMissingFile(t *testing.T) {
	f, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, f.Datarefs)
}

func TestLoadReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Datarefs, 4)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
