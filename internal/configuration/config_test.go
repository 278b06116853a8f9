package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromYaml(t *testing.T) {
	// GIVEN
	viper.Reset()
	path := filepath.Join(t.TempDir(), "humidistat.yaml")
	content := `
dbPath: /tmp/humidistat.db
mode: Cascade
ui:
  refreshInterval: 250ms
  saveCooldown: 42
sensors:
  humidity:
    id: chamber
    file:
      path: /tmp/humidity
      scale: 10
  wetFlow:
    id: wet
    simulated:
      channel: wetFlow
  dryFlow:
    id: dry
    simulated:
      channel: dryFlow
input:
  type: script
  script: up,up,select
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	InitConfig(path)
	require.NoError(t, viper.ReadInConfig())

	// WHEN
	LoadConfig()

	// THEN
	assert.Equal(t, "/tmp/humidistat.db", CurrentConfig.DbPath)
	assert.Equal(t, ModeCascade, CurrentConfig.Mode)
	assert.Equal(t, 250*time.Millisecond, CurrentConfig.Ui.RefreshInterval)
	assert.Equal(t, 100*time.Millisecond, CurrentConfig.Ui.InputInterval)
	assert.Equal(t, 42, CurrentConfig.Ui.SaveCooldown)
	assert.Equal(t, "chamber", CurrentConfig.Sensors.Humidity.ID)
	require.NotNil(t, CurrentConfig.Sensors.Humidity.File)
	assert.Equal(t, 10.0, CurrentConfig.Sensors.Humidity.File.Scale)
	require.NotNil(t, CurrentConfig.Sensors.WetFlow)
	assert.Equal(t, ChannelWetFlow, CurrentConfig.Sensors.WetFlow.Simulated.Channel)
	assert.Equal(t, InputScript, CurrentConfig.Input.Type)
	assert.Equal(t, []string{"up", "up", "select"}, CurrentConfig.Input.Script)
	assert.NoError(t, validateConfig(&CurrentConfig, ""))
}
