package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm1")
	require.NoError(t, os.WriteFile(path, []byte("128\n"), 0644))

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 128, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm1")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadFloatFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "humidity")
	require.NoError(t, os.WriteFile(path, []byte(" 55.25 \n"), 0644))

	// WHEN
	value, err := ReadFloatFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 55.25, value)
}

func TestReadFloatFromFile_Missing(t *testing.T) {
	// WHEN
	_, err := ReadFloatFromFile(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.Error(t, err)
}

func TestWriteIntToFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm2")
	require.NoError(t, os.WriteFile(path, []byte("0"), 0644))

	// WHEN
	err := WriteIntToFile(200, path)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 200, value)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm2")

	// WHEN
	err := WriteIntToFileAtomic(77, path)

	// THEN
	assert.NoError(t, err)
	value, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 77, value)
}

func TestExpandHomeDir(t *testing.T) {
	// WHEN
	result, err := ExpandHomeDir("/sys/class/hwmon")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/sys/class/hwmon", result)

	// WHEN
	result, err = ExpandHomeDir("~/humidity")

	// THEN
	assert.NoError(t, err)
	assert.NotContains(t, result, "~")
}
