package appmanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServiceSequence_SortsByStartOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
services:
  - name: cron
    start_order: 3
    config:
      schedule: "0 7 * * *"
  - name: logger
    start_order: 1
    config:
      folder_path: ./logs
  - name: report
    start_order: 2
    config:
      port: 6143
`), 0o644))

	configs, err := LoadServiceSequence(path)
	require.NoError(t, err)
	require.Len(t, configs, 3)
	assert.Equal(t, "logger", configs[0].Name)
	assert.Equal(t, "report", configs[1].Name)
	assert.Equal(t, "cron", configs[2].Name)
	assert.Equal(t, 6143, configs[1].Config["port"])
}

func TestLoadServiceSequence_MissingFile(t *testing.T) {
	_, err := LoadServiceSequence(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
