// Package config loads the navsim configuration through viper.
package config

import (
	"strings"
	"time"

	"lintang/congestionnav/pkg/server"

	"github.com/spf13/viper"
)

const EnvPrefix = "NAVSIM"

type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Graph      GraphConfig      `mapstructure:"graph"`
	Obstacle   ObstacleConfig   `mapstructure:"obstacle"`
	Agent      AgentConfig      `mapstructure:"agent"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	Format      string `mapstructure:"format" json:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
}

type GraphConfig struct {
	CellSize float64 `mapstructure:"cell_size"`
	File     string  `mapstructure:"file"`
	// plain, osm atau auto (dari ekstensi file)
	Format string `mapstructure:"format"`
}

type ObstacleConfig struct {
	Count           int     `mapstructure:"count"`
	HexRadius       float64 `mapstructure:"hex_radius"`
	MaxMoveDistance float64 `mapstructure:"max_move_distance"`
	Inertia         float64 `mapstructure:"inertia"`
	Acceleration    float64 `mapstructure:"acceleration"`
	MaxAttempts     int     `mapstructure:"max_attempts"`
}

type AgentConfig struct {
	// meter per tick
	Speed           float64 `mapstructure:"speed"`
	MaxPairAttempts int     `mapstructure:"max_pair_attempts"`
}

type SimulationConfig struct {
	Rounds       int           `mapstructure:"rounds"`
	MaxTicks     int           `mapstructure:"max_ticks"`
	Seed         uint64        `mapstructure:"seed"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type StorageConfig struct {
	// kosong berarti hasil round tidak disimpan
	Path string `mapstructure:"path"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "navsim")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)

	v.SetDefault("graph.cell_size", 0.01)
	v.SetDefault("graph.file", "input1.txt")
	v.SetDefault("graph.format", "auto")

	v.SetDefault("obstacle.count", 3)
	v.SetDefault("obstacle.hex_radius", 0.009)
	v.SetDefault("obstacle.max_move_distance", 0.0005)
	v.SetDefault("obstacle.inertia", 0.8)
	v.SetDefault("obstacle.acceleration", 0.5)
	v.SetDefault("obstacle.max_attempts", 10)

	v.SetDefault("agent.speed", 100.0)
	v.SetDefault("agent.max_pair_attempts", 1000)

	v.SetDefault("simulation.rounds", 10)
	v.SetDefault("simulation.max_ticks", 100000)
	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.tick_interval", "50ms")

	v.SetDefault("server.listen_addr", ":5000")
	v.SetDefault("storage.path", "")
}

// NewViper viper instance with defaults and the NAVSIM_ env mapping (graph.cell_size ->
// NAVSIM_GRAPH_CELL_SIZE).
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads an explicit config file, or ./config.yaml when path is empty. A missing default
// file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return nil
		}
		return server.WrapErrorf(err, server.ErrBadParamInput, "read config file")
	}
	return nil
}

// Load unmarshal + validate.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, server.WrapErrorf(err, server.ErrBadParamInput, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	invalid := func(format string, a ...interface{}) error {
		return server.WrapErrorf(nil, server.ErrBadParamInput, "invalid config: "+format, a...)
	}
	switch {
	case c.Graph.CellSize <= 0:
		return invalid("graph.cell_size must be positive, got %v", c.Graph.CellSize)
	case c.Obstacle.Count < 0:
		return invalid("obstacle.count must not be negative, got %d", c.Obstacle.Count)
	case c.Obstacle.HexRadius <= 0:
		return invalid("obstacle.hex_radius must be positive, got %v", c.Obstacle.HexRadius)
	case c.Obstacle.MaxMoveDistance < 0:
		return invalid("obstacle.max_move_distance must not be negative, got %v", c.Obstacle.MaxMoveDistance)
	case c.Obstacle.Inertia < 0 || c.Obstacle.Inertia > 1:
		return invalid("obstacle.inertia must be in [0,1], got %v", c.Obstacle.Inertia)
	case c.Obstacle.MaxAttempts < 1:
		return invalid("obstacle.max_attempts must be at least 1, got %d", c.Obstacle.MaxAttempts)
	case c.Agent.Speed <= 0:
		return invalid("agent.speed must be positive, got %v", c.Agent.Speed)
	case c.Agent.MaxPairAttempts < 1:
		return invalid("agent.max_pair_attempts must be at least 1, got %d", c.Agent.MaxPairAttempts)
	case c.Simulation.Rounds < 0:
		return invalid("simulation.rounds must not be negative, got %d", c.Simulation.Rounds)
	case c.Simulation.MaxTicks < 1:
		return invalid("simulation.max_ticks must be at least 1, got %d", c.Simulation.MaxTicks)
	case c.Simulation.TickInterval < 0:
		return invalid("simulation.tick_interval must not be negative, got %v", c.Simulation.TickInterval)
	}
	switch c.Graph.Format {
	case "plain", "osm", "auto", "":
	default:
		return invalid("graph.format must be plain, osm or auto, got %q", c.Graph.Format)
	}
	return nil
}
