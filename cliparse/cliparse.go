package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Store type constants
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMongo    = "mongo"
	StoreBolt     = "bolt"
)

type Config struct {
	Port          int
	StoreType     string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	BoltPath      string
	EventsFile    string
	IPHashSalt    string
	StoreTimeout  time.Duration
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var timeoutMS int

	fs := flag.NewFlagSet("parkvote", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "s", "", "Store type (memory, postgres, sqlite, mongo or bolt)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres/sqlite)")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", "", "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", "", "MongoDB database name")
	fs.StringVar(&cfg.BoltPath, "bolt-path", "", "Bolt database file path")
	fs.StringVar(&cfg.EventsFile, "events", "", "Event catalog JSON file (optional)")
	fs.IntVar(&timeoutMS, "store-timeout-ms", 0, "Per-operation storage timeout in milliseconds")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8090 // default
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreMemory
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGO_URI")
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = os.Getenv("MONGO_DATABASE")
		if cfg.MongoDatabase == "" {
			cfg.MongoDatabase = "parkvote"
		}
	}
	if cfg.BoltPath == "" {
		cfg.BoltPath = os.Getenv("BOLT_PATH")
		if cfg.BoltPath == "" {
			cfg.BoltPath = "data/parkvote.db"
		}
	}
	if cfg.EventsFile == "" {
		cfg.EventsFile = os.Getenv("EVENTS_FILE")
	}

	if timeoutMS == 0 {
		if msStr := os.Getenv("STORE_TIMEOUT_MS"); msStr != "" {
			ms, err := strconv.Atoi(msStr)
			if err != nil {
				return Config{}, errors.New("invalid STORE_TIMEOUT_MS env variable")
			}
			timeoutMS = ms
		} else {
			timeoutMS = 3000
		}
	}
	cfg.StoreTimeout = time.Duration(timeoutMS) * time.Millisecond

	// Secrets - MUST be provided
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	// Per-type requirements
	switch cfg.StoreType {
	case StoreMemory, StoreBolt:
	case StorePostgres, StoreSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("mongo URI required (use -mongo-uri or MONGO_URI env)")
		}
	default:
		return Config{}, errors.New("unknown store type: " + cfg.StoreType)
	}

	return cfg, nil
}
