package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/shelflog/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shelflog", "config.yml")
}

// Path returns the config path in effect, honoring SHELFLOG_CONFIG.
func Path() string {
	if p := os.Getenv("SHELFLOG_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config from disk (or env). A missing file is not an error:
// defaults apply and `config init` can write one later.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit path.
func LoadFile(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SHELFLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Token comes from env only.
	cfg.API.Token = os.Getenv(cfg.API.EffectiveTokenEnv())

	cfg.Cache.Dir = util.ExpandHome(cfg.Cache.Dir)
	cfg.Log.File = util.ExpandHome(cfg.Log.File)
	cfg.Dev.DBPath = util.ExpandHome(cfg.Dev.DBPath)

	return &cfg, nil
}

// Default returns the built-in configuration, ignoring files and env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://127.0.0.1:8080")
	v.SetDefault("api.token_env", "SHELFLOG_TOKEN")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.rate_per_sec", 10.0)
	v.SetDefault("cache.dir", defaultDataDir("cache"))
	v.SetDefault("log.file", defaultStateFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.cell_width_px", 8)
	v.SetDefault("ui.breakpoint_px", 768)
	v.SetDefault("ui.pagination_window", 5)
	v.SetDefault("dev.addr", "127.0.0.1:8080")
	v.SetDefault("dev.db_path", defaultDataDir("dev.db"))
	v.SetDefault("dev.secret", "dev-secret-change-me")
	v.SetDefault("dev.user_id", 1)
}

// Save writes the config to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

func defaultDataDir(name string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "shelflog", name)
}

func defaultStateFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "shelflog", "shelflog.log")
}
