package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/readinglist-service/pkg/kafka"
	"github.com/Astemirdum/readinglist-service/pkg/logger"
	"github.com/Astemirdum/readinglist-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Catalog struct {
	BaseURL string `yaml:"baseURL" envconfig:"GOOGLE_BOOKS_URL" default:"https://www.googleapis.com/books/v1"`
	APIKey  string `yaml:"apiKey" envconfig:"GOOGLE_BOOKS_API_KEY"`
}

type Auth struct {
	JWTSecret string `yaml:"jwtSecret" envconfig:"JWT_SECRET" default:"dev-secret"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	Catalog  Catalog      `yaml:"catalog"`
	Auth     Auth         `yaml:"auth"`
	Kafka    kafka.Config `yaml:"kafka"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}

type Option func(*Config)

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}
