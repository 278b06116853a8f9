package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/humidistat/humidistat/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	stored  Snapshot
	valid   bool
	saves   int
	saveErr error
}

func (s *fakeStore) Load() (Snapshot, bool) {
	return s.stored, s.valid
}

func (s *fakeStore) Save(snapshot Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.stored = snapshot
	s.valid = true
	return nil
}

func (s *fakeStore) Reset() Snapshot {
	return Defaults()
}

func TestNewConfig_FallsBackToDefaults(t *testing.T) {
	// GIVEN
	store := &fakeStore{valid: false}

	// WHEN
	config := NewConfig(store)

	// THEN
	assert.False(t, config.LoadedFromStore)
	assert.Equal(t, Defaults(), *config.Snapshot)
}

func TestNewConfig_LoadsStoredSnapshot(t *testing.T) {
	// GIVEN
	stored := Defaults()
	stored.HumidityKp = 7.5
	store := &fakeStore{stored: stored, valid: true}

	// WHEN
	config := NewConfig(store)

	// THEN
	assert.True(t, config.LoadedFromStore)
	assert.Equal(t, 7.5, config.Snapshot.HumidityKp)
}

func TestNewConfig_WithoutStore(t *testing.T) {
	// WHEN
	config := NewConfig(nil)

	// THEN
	assert.False(t, config.LoadedFromStore)
	assert.Equal(t, Defaults(), *config.Snapshot)
	assert.NoError(t, config.Save())
}

func TestReset_KeepsParameterBindings(t *testing.T) {
	// GIVEN
	store := &fakeStore{}
	config := NewConfig(store)
	parameters := config.Parameters(false)
	parameters[0].Adjust(1000)
	require.Equal(t, Defaults().HumidityKp+1, config.Snapshot.HumidityKp)

	// WHEN
	config.Reset()

	// THEN
	assert.Equal(t, Defaults().HumidityKp, parameters[0].Value())
	assert.Equal(t, 0, store.saves)
}

func TestSave_PersistsLiveValues(t *testing.T) {
	// GIVEN
	store := &fakeStore{}
	config := NewConfig(store)
	config.Snapshot.LowValue = 99

	// WHEN
	err := config.Save()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, uint8(99), store.stored.LowValue)
	assert.Equal(t, 1, store.saves)
	assert.True(t, config.LoadedFromStore)
}

func TestSave_PropagatesStoreError(t *testing.T) {
	// GIVEN
	store := &fakeStore{saveErr: errors.New("disk full")}
	config := NewConfig(store)

	// WHEN
	err := config.Save()

	// THEN
	assert.Error(t, err)
	assert.False(t, config.LoadedFromStore)
}

func TestParameters_SingleStage(t *testing.T) {
	// GIVEN
	config := NewConfig(nil)

	// WHEN
	parameters := config.Parameters(false)

	// THEN
	labels := []string{}
	for _, p := range parameters {
		labels = append(labels, p.Label())
	}
	assert.Equal(t, []string{"Kp", "Ki", "Kd", "dt", "LV"}, labels)
	assert.Equal(t, params.KindUint16, parameters[3].Kind())
	assert.Equal(t, params.KindUint8, parameters[4].Kind())
}

func TestParameters_Cascade(t *testing.T) {
	// GIVEN
	config := NewConfig(nil)

	// WHEN
	parameters := config.Parameters(true)

	// THEN
	assert.Len(t, parameters, 12)
	assert.Equal(t, "Total FR", parameters[9].Label())
	assert.Equal(t, params.KindFloat, parameters[9].Kind())

	// WHEN
	parameters[8].Adjust(-50)

	// THEN
	assert.Equal(t, Defaults().FlowDt-50, config.Snapshot.FlowDt)
}

func TestSampleIntervals(t *testing.T) {
	// GIVEN
	s := Snapshot{Dt: 250, FlowDt: 20}

	// THEN
	assert.Equal(t, 250*time.Millisecond, s.SampleInterval())
	assert.Equal(t, 20*time.Millisecond, s.FlowSampleInterval())
}
