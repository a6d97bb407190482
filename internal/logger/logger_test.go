package logger

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("line\n"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestNewLoggerService_ConfigDefaults(t *testing.T) {
	svc := NewLoggerService(map[string]interface{}{
		"max_file_mb":    float64(16),
		"retention_days": 14,
	})
	assert.Equal(t, "logger", svc.Name())
	assert.Equal(t, int64(16*1024*1024), svc.maxFileBytes)
	assert.Equal(t, 14, svc.retentionDays)
	assert.Equal(t, "./logs", svc.folderPath)
}

func TestArchiveExpired(t *testing.T) {
	dir := t.TempDir()
	old := writeLog(t, dir, "cashflow_old.log", 30*24*time.Hour)
	fresh := writeLog(t, dir, "cashflow_fresh.log", time.Hour)
	live := writeLog(t, dir, "cashflow_live.log", 30*24*time.Hour)

	svc := NewLoggerService(map[string]interface{}{
		"folder_path":    dir,
		"retention_days": 14,
	})
	svc.currentLog = live

	svc.archiveExpired()

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err), "expired log removed after archiving")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "recent log untouched")
	_, err = os.Stat(live)
	assert.NoError(t, err, "live log untouched even past the cutoff")

	zips, err := filepath.Glob(filepath.Join(dir, "logs_*.zip"))
	require.NoError(t, err)
	require.Len(t, zips, 1)
	zr, err := zip.OpenReader(zips[0])
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "cashflow_old.log", zr.File[0].Name)
}

func TestArchiveExpired_NothingToArchive(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "cashflow_fresh.log", time.Hour)

	svc := NewLoggerService(map[string]interface{}{
		"folder_path":    dir,
		"retention_days": 14,
	})
	svc.archiveExpired()

	zips, err := filepath.Glob(filepath.Join(dir, "logs_*.zip"))
	require.NoError(t, err)
	assert.Empty(t, zips, "no empty zip on quiet days")
}
