package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wfunc/outbreak/game"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Autoplay AutoplayConfig `mapstructure:"autoplay"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddress string `mapstructure:"http_address"`
	RPCAddress  string `mapstructure:"rpc_address"`
}

type DatabaseConfig struct {
	// Driver is one of "sqlite", "postgres" or "gorm".
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type GameConfig struct {
	Players        int    `mapstructure:"players"`
	Epidemics      int    `mapstructure:"epidemics"`
	CardsPerTurn   int    `mapstructure:"cards_per_turn"`
	MaxCubes       int    `mapstructure:"max_cubes"`
	MaxOutbreaks   int    `mapstructure:"max_outbreaks"`
	InfectionRates []int  `mapstructure:"infection_rates"`
	Testing        bool   `mapstructure:"testing"`
	Interactive    bool   `mapstructure:"interactive"`
	Events         bool   `mapstructure:"events"`
	Seed           uint64 `mapstructure:"seed"`
	BoardFile      string `mapstructure:"board_file"`
}

type AutoplayConfig struct {
	Games        int           `mapstructure:"games"`
	TurnInterval time.Duration `mapstructure:"turn_interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.rpc_address", ":8081")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite.path", "outbreak.db")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.dbname", "outbreak")
	v.SetDefault("game.players", 4)
	v.SetDefault("game.events", true)
	v.SetDefault("autoplay.games", 2)
	v.SetDefault("autoplay.turn_interval", "500ms")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml from path. A missing file leaves the
// defaults and OUTBREAK_* environment overrides in effect.
func LoadConfig(path string) (config *Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("outbreak")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	return
}

// Options converts the game section to engine options, loading the board
// file when one is set.
func (c *GameConfig) Options() (game.Options, error) {
	opts := game.Options{
		Players:        c.Players,
		Epidemics:      c.Epidemics,
		CardsPerTurn:   c.CardsPerTurn,
		MaxCubes:       c.MaxCubes,
		MaxOutbreaks:   c.MaxOutbreaks,
		InfectionRates: c.InfectionRates,
		Testing:        c.Testing,
		Interactive:    c.Interactive,
		DisableEvents:  !c.Events,
		Seed:           c.Seed,
	}
	if c.BoardFile != "" {
		b, err := game.LoadBoard(c.BoardFile)
		if err != nil {
			return game.Options{}, err
		}
		opts.Board = b
	}
	return opts, nil
}
