package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	TCPPort    string `toml:"tcp_port"`
	HTTPPort   string `toml:"http_port"`
	GRPCServer string `toml:"grpc_server"`
	RedisAddr  string `toml:"redis_addr"`
	RedisDB    int    `toml:"redis_db"`
	ProxyAddr  string `toml:"proxy_addr"`
	LogLevel   string `toml:"log_level"`
	RawLogDir  string `toml:"raw_log_dir"`

	MaxFrameBytes int `toml:"max_frame_bytes"`
	MaxIDLen      int `toml:"max_id_len"`
	Workers       int `toml:"workers"`

	TrackTTL   time.Duration `toml:"track_ttl"`
	StaleAfter time.Duration `toml:"stale_after"`
}

func Default() Config {
	return Config{
		TCPPort:       "8001",
		HTTPPort:      "9000",
		GRPCServer:    "",
		RedisAddr:     "localhost:6379",
		LogLevel:      "info",
		MaxFrameBytes: 64 * 1024,
		MaxIDLen:      64,
		Workers:       64,
		TrackTTL:      10 * time.Minute,
		StaleAfter:    120 * time.Second,
	}
}

// Load arma la config: defaults, luego CONFIG_FILE (toml) si existe y por
// último las variables de entorno.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.TCPPort == "" {
		return fmt.Errorf("config: tcp_port is required")
	}
	if c.MaxFrameBytes <= 0 {
		return fmt.Errorf("config: max_frame_bytes must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: workers must be > 0")
	}
	return nil
}

func applyEnv(c *Config) error {
	c.TCPPort = getEnv("TCP_PORT", c.TCPPort)
	c.HTTPPort = getEnv("HTTP_PORT", c.HTTPPort)
	c.GRPCServer = getEnv("GRPC_SERVER", c.GRPCServer)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.ProxyAddr = getEnv("PROXY_ADDR", c.ProxyAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.RawLogDir = getEnv("RAW_LOG_DIR", c.RawLogDir)

	var err error
	if c.RedisDB, err = getEnvInt("REDIS_DB", c.RedisDB); err != nil {
		return err
	}
	if c.MaxFrameBytes, err = getEnvInt("MAX_FRAME_BYTES", c.MaxFrameBytes); err != nil {
		return err
	}
	if c.MaxIDLen, err = getEnvInt("MAX_ID_LEN", c.MaxIDLen); err != nil {
		return err
	}
	if c.Workers, err = getEnvInt("WORKERS", c.Workers); err != nil {
		return err
	}
	if c.TrackTTL, err = getEnvDuration("TRACK_TTL", c.TrackTTL); err != nil {
		return err
	}
	if c.StaleAfter, err = getEnvDuration("STALE_AFTER", c.StaleAfter); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
