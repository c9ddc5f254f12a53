// Package params holds runtime configuration, loaded from .env files and
// environment variables.
package params

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Engine struct {
	// OrderFile is the CSV input; empty disables the batch run.
	OrderFile string
	// ReportFile is the CSV execution report output.
	ReportFile string
}

type API struct {
	Enabled bool
	Addr    string
}

type Archive struct {
	// Dir enables the pebble report archive when non-empty.
	Dir string
}

type Kafka struct {
	// Brokers enables report publishing when non-empty.
	Brokers []string
	Topic   string
}

type Config struct {
	Engine  Engine
	API     API
	Archive Archive
	Kafka   Kafka
	LogFile string
}

func Default() Config {
	return Config{
		Engine: Engine{
			OrderFile:  "orders.csv",
			ReportFile: "execution_rep.csv",
		},
		API: API{
			Enabled: false,
			Addr:    ":8080",
		},
		Kafka: Kafka{
			Topic: "execution-reports",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("ORDER_FILE"); v != "" {
		cfg.Engine.OrderFile = v
	}
	if v := os.Getenv("REPORT_FILE"); v != "" {
		cfg.Engine.ReportFile = v
	}
	if v := os.Getenv("API_ENABLED"); v != "" {
		cfg.API.Enabled = v == "true"
	}
	if v := os.Getenv("API_ADDR"); v != "" {
		cfg.API.Addr = v
	}
	if v := os.Getenv("ARCHIVE_DIR"); v != "" {
		cfg.Archive.Dir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg
}
