package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml next
// to the executable with env-var overrides on top.
type AppConfig struct {
	Server Server `toml:"server"`
	Data   Data   `toml:"data"`
	Upload Upload `toml:"upload"`
	Ingest Ingest `toml:"ingest"`
	Log    Log    `toml:"log"`
}

// Server holds HTTP server settings.
type Server struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// Data holds storage locations.
type Data struct {
	DataDir string `toml:"data_dir"`
}

// Upload bounds one import request, enforced before parsing begins.
type Upload struct {
	MaxFiles      int `toml:"max_files"`
	MaxFileSizeMB int `toml:"max_file_size_mb"`
}

// Ingest holds the heuristic constants of the parsers, tuned against the
// spreadsheets in circulation.
type Ingest struct {
	RefillThresholdAr      int `toml:"refill_threshold_ar"`
	VehicleBlankRowLimit   int `toml:"vehicle_blank_row_limit"`
	GeneratorBlankRowLimit int `toml:"generator_blank_row_limit"`
	OtherBlankRowLimit     int `toml:"other_blank_row_limit"`
}

// Log holds slog settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the stock configuration.
func Default() *AppConfig {
	return &AppConfig{
		Server: Server{
			Port:    8930,
			DevMode: false,
		},
		Data: Data{
			DataDir: "data",
		},
		Upload: Upload{
			MaxFiles:      10,
			MaxFileSizeMB: 25,
		},
		Ingest: Ingest{
			RefillThresholdAr:      100000,
			VehicleBlankRowLimit:   15,
			GeneratorBlankRowLimit: 10,
			OtherBlankRowLimit:     10,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// exeDir returns the executable's directory, falling back to the working
// directory.
func exeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// Load reads config.toml from the executable's directory. A missing file
// yields the defaults; env vars override either way.
func Load() (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(exeDir(), "config.toml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PRIRTEM_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("PRIRTEM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PRIRTEM_REFILL_THRESHOLD_AR"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil && threshold > 0 {
			cfg.Ingest.RefillThresholdAr = threshold
		}
	}
	if v := os.Getenv("PRIRTEM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRIRTEM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// EnsureDataDir creates the data directory tree and returns its path.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir(), dataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// MaxFileSizeBytes is the per-file upload cap in bytes.
func (u Upload) MaxFileSizeBytes() int64 {
	return int64(u.MaxFileSizeMB) << 20
}
