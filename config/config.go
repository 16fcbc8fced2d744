package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr         string   `yaml:"addr" env:"TABLETOP_ADDR"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type WebSocketConfig struct {
	WriteWait      time.Duration `yaml:"write_wait"`
	PongWait       time.Duration `yaml:"pong_wait"`
	PingPeriod     time.Duration `yaml:"ping_period"`
	MaxMessageSize int64         `yaml:"max_message_size"`
	SendBuffer     int           `yaml:"send_buffer"`
}

type HubConfig struct {
	QueueSize int `yaml:"queue_size"`
}

type RedisConfig struct {
	Enabled     bool   `yaml:"enabled" env:"TABLETOP_REDIS_ENABLED"`
	Addr        string `yaml:"addr" env:"TABLETOP_REDIS_ADDR"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	KeyPrefix   string `yaml:"key_prefix"`
	IndexBuffer int    `yaml:"index_buffer"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"TABLETOP_LOG_LEVEL"`
	Development bool   `yaml:"development"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Hub       HubConfig       `yaml:"hub"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
}

// Default boots one listening endpoint with redis disabled.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"*"},
		},
		WebSocket: WebSocketConfig{
			WriteWait:      10 * time.Second,
			PongWait:       60 * time.Second,
			PingPeriod:     54 * time.Second,
			MaxMessageSize: 1 << 20,
			SendBuffer:     256,
		},
		Hub: HubConfig{QueueSize: 1024},
		Redis: RedisConfig{
			Addr:        "127.0.0.1:6379",
			KeyPrefix:   "tabletop:",
			IndexBuffer: 256,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load starts from Default, overlays the YAML file at path (if path is not
// empty) and then the TABLETOP_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.WebSocket.PongWait <= 0 || c.WebSocket.PingPeriod <= 0 {
		errs = append(errs, errors.New("websocket.pong_wait and websocket.ping_period must be positive"))
	} else if c.WebSocket.PingPeriod >= c.WebSocket.PongWait {
		errs = append(errs, errors.New("websocket.ping_period must be shorter than websocket.pong_wait"))
	}
	if c.WebSocket.SendBuffer <= 0 {
		errs = append(errs, errors.New("websocket.send_buffer must be positive"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	return errors.Join(errs...)
}
