package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_MissingFileSynthesizesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicedesk.yaml")

	cfg, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Default().Company.Name, cfg.Company.Name)
	assert.NotEmpty(t, cfg.FAQ)

	// The defaults must have been written back.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Falcon Cafe")

	// A second load reads the written file.
	again, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicedesk.yaml")
	body := "company:\n  name: Side Street Beans\n  greeting: hello\nstorage:\n  data_dir: /tmp/records\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Side Street Beans", cfg.Company.Name)
	assert.Equal(t, "/tmp/records", cfg.Storage.DataDir)
	assert.Empty(t, cfg.FAQ)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicedesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))

	_, err := Load(path, zap.NewNop())
	assert.Error(t, err)
}
