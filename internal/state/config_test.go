package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "https://api.mojang.com", cfg.API.IdentityURL)
	assert.Equal(t, "https://sessionserver.mojang.com", cfg.API.SessionURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.API.CollapseDuplicates)
	assert.Equal(t, "1MB", cfg.Skins.MaxSize)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
	assert.Equal(t, 60, cfg.Server.RateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, ValidateConfig(cfg))
}

func TestSkinsConfig_MaxSizeBytes(t *testing.T) {
	tests := []struct {
		size    string
		want    int64
		wantErr bool
	}{
		{size: "1MB", want: 1000000},
		{size: "512KB", want: 512000},
		{size: "2048", want: 2048},
		{size: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			got, err := SkinsConfig{MaxSize: tt.size}.MaxSizeBytes()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigFrom_DefaultsIfMissing(t *testing.T) {
	setConfigHome(t)

	configPath, err := GetConfigPath()
	require.NoError(t, err)

	cfg, err := LoadConfigFrom(context.Background(), configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// Loading never creates the file.
	_, err = os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadConfigFrom_LoadsExisting(t *testing.T) {
	setConfigHome(t)
	ctx := context.Background()

	configPath, err := GetConfigPath()
	require.NoError(t, err)

	customCfg := DefaultConfig()
	customCfg.API.Timeout = 3 * time.Second
	customCfg.API.CollapseDuplicates = true
	customCfg.Server.Listen = ":9000"

	_, err = SaveConfigTo(ctx, configPath, customCfg, false)
	require.NoError(t, err)

	loadedCfg, err := LoadConfigFrom(ctx, configPath)
	require.NoError(t, err)
	assert.Equal(t, customCfg, loadedCfg)
}

func TestLoadConfigFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: 2s\n"), 0644))

	cfg, err := LoadConfigFrom(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://api.mojang.com", cfg.API.IdentityURL)
	assert.Equal(t, "1MB", cfg.Skins.MaxSize)
}

func TestLoadConfigFrom_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))

	_, err := LoadConfigFrom(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLoadConfigFrom_RecoversFromCorruption(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("this is not valid YAML: {[}]"), 0644))

	cfg, err := LoadConfigFrom(context.Background(), configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(configPath + ".corrupted")
	require.NoError(t, err)
}

func TestSaveConfigTo_NilConfig(t *testing.T) {
	_, err := SaveConfigTo(context.Background(), filepath.Join(t.TempDir(), "config.yaml"), nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")
}

func TestSaveConfigTo_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	ctx := context.Background()

	backupPath, err := SaveConfigTo(ctx, path, DefaultConfig(), true)
	require.NoError(t, err)
	assert.Empty(t, backupPath)

	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	backupPath, err = SaveConfigTo(ctx, path, cfg, true)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backupPath)

	previous, err := LoadConfigFrom(ctx, backupPath)
	require.NoError(t, err)
	assert.Equal(t, "info", previous.Logging.Level)

	current, err := LoadConfigFrom(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "debug", current.Logging.Level)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		nilCfg  bool
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "nil config",
			nilCfg:  true,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "identity URL without scheme",
			mutate:  func(cfg *Config) { cfg.API.IdentityURL = "api.mojang.com" },
			wantErr: true,
			errMsg:  "invalid api.identity_url",
		},
		{
			name:    "empty session URL",
			mutate:  func(cfg *Config) { cfg.API.SessionURL = "" },
			wantErr: true,
			errMsg:  "invalid api.session_url",
		},
		{
			name:    "negative timeout disables it",
			mutate:  func(cfg *Config) { cfg.API.Timeout = -1 },
			wantErr: false,
		},
		{
			name:    "skins directory traversal",
			mutate:  func(cfg *Config) { cfg.Skins.Directory = "../skins" },
			wantErr: true,
			errMsg:  "invalid skins.directory",
		},
		{
			name:    "invalid max size",
			mutate:  func(cfg *Config) { cfg.Skins.MaxSize = "huge" },
			wantErr: true,
			errMsg:  "invalid skins.max_size",
		},
		{
			name:    "listen without port",
			mutate:  func(cfg *Config) { cfg.Server.Listen = "localhost" },
			wantErr: true,
			errMsg:  "invalid server.listen",
		},
		{
			name:    "listen on all interfaces",
			mutate:  func(cfg *Config) { cfg.Server.Listen = ":8080" },
			wantErr: false,
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *Config) { cfg.Server.RateLimit = -1 },
			wantErr: true,
			errMsg:  "server.rate_limit must be >= 0",
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "invalid" },
			wantErr: true,
			errMsg:  "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if !tt.nilCfg {
				cfg = DefaultConfig()
				tt.mutate(cfg)
			}

			err := ValidateConfig(cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_AtomicWrites(t *testing.T) {
	setConfigHome(t)
	ctx := context.Background()

	configPath, err := GetConfigPath()
	require.NoError(t, err)

	cfg := DefaultConfig()
	for i := 0; i < 10; i++ {
		cfg.Server.RateLimit = i
		_, err := SaveConfigTo(ctx, configPath, cfg, false)
		require.NoError(t, err)

		loadedCfg, err := LoadConfigFrom(ctx, configPath)
		require.NoError(t, err)
		assert.Equal(t, i, loadedCfg.Server.RateLimit)
	}

	configDir, err := GetConfigDir()
	require.NoError(t, err)
	entries, err := os.ReadDir(configDir)
	require.NoError(t, err)

	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp-", "temp file should not exist")
	}
}
