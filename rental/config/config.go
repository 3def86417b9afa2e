package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/Astemirdum/rental-service/pkg/postgres"
	"github.com/Astemirdum/rental-service/rental/internal/charge"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"RENTAL_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"RENTAL_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

// Collaborator is read from <NAME>_HOST and <NAME>_PORT.
type Collaborator struct {
	Host string `default:"localhost"`
	Port string
}

type HTTPClient struct {
	Timeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"5s"`
	Retries int           `envconfig:"HTTP_CLIENT_RETRIES" default:"2"`
	Backoff time.Duration `envconfig:"HTTP_CLIENT_BACKOFF" default:"200ms"`
}

type Outbox struct {
	Schedule    string `envconfig:"OUTBOX_SCHEDULE" default:"@every 5s"`
	BatchSize   int    `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts int    `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
	// Lease bounds one batch; claimed events go back to the pool after it.
	Lease time.Duration `envconfig:"OUTBOX_LEASE" default:"1m"`
}

type Config struct {
	Server      HTTPServer    `yaml:"server"`
	Database    postgres.DB   `yaml:"db"`
	Kafka       kafka.Config  `yaml:"kafka"`
	Log         logger.Log    `yaml:"log"`
	Charge      charge.Config `yaml:"charge"`
	Client      HTTPClient    `yaml:"client"`
	Outbox      Outbox        `yaml:"outbox"`
	Reservation Collaborator  `yaml:"reservation"`
	User        Collaborator  `yaml:"user"`
	Vehicle     Collaborator  `yaml:"vehicle"`
	Contract    Collaborator  `yaml:"contract"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options are applied last.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	masked := *cfg
	masked.Database.Password = "***"
	jscfg, _ := json.MarshalIndent(masked, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
