package config

import (
	"net"

	"github.com/kelseyhightower/envconfig"
)

type Configuration struct {
	Server struct {
		Host        string   `envconfig:"SERVER_HOST" default:"0.0.0.0"`
		Port        string   `envconfig:"SERVER_PORT" default:"8080"`
		CorsOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}
	Database struct {
		Address      string `envconfig:"MONGO_ADDRESS"`
		DatabaseName string `envconfig:"MONGO_DATABASE" default:"chess_learning_tree"`
		Collection   string `envconfig:"MONGO_COLLECTION" default:"lessons"`
	}
	Stockfish struct {
		Path  string   `envconfig:"STOCKFISH_PATH" default:"stockfish"`
		Args  []string `envconfig:"STOCKFISH_ARGS"`
		Depth int      `envconfig:"STOCKFISH_DEPTH" default:"12"`
	}
	LogMode string `envconfig:"LOG_MODE" default:"dev"`
}

func (c *Configuration) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func InitConfig() (*Configuration, error) {
	cfg := &Configuration{}
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
