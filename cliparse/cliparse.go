// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/govote/models"
)

// Clock modes
const (
	ClockManual = "manual"
	ClockWall   = "wall"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	CallerKeySalt string
	GenesisFile   string
	OwnerID       string
	ClockMode     string
	RateLimit     float64
	Debug         bool

	// TrustProxy honors X-Forwarded-For and X-Real-IP as the client
	// address. Only safe behind a proxy that overwrites them.
	TrustProxy bool

	// IssueKey, when set, asks main to print the caller key for this
	// identity and exit.
	IssueKey string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("govote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CallerKeySalt, "caller-salt", "", "Caller key salt (prefer env)")

	// Governance
	fs.StringVar(&cfg.GenesisFile, "g", "", "Genesis YAML file")
	fs.StringVar(&cfg.OwnerID, "owner", "", "Owner identity (overrides genesis)")
	fs.StringVar(&cfg.ClockMode, "clock", "", "Logical clock mode (manual or wall)")

	fs.Float64Var(&cfg.RateLimit, "rate", 0, "Requests per second allowed per client IP")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take client IPs from X-Forwarded-For/X-Real-IP")
	fs.StringVar(&cfg.IssueKey, "issue-key", "", "Print the caller key for an identity and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.CallerKeySalt == "" {
		cfg.CallerKeySalt = os.Getenv("CALLER_KEY_SALT")
	}
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	// Key issuance needs nothing else
	if cfg.IssueKey != "" {
		return cfg, nil
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
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.GenesisFile == "" {
		cfg.GenesisFile = os.Getenv("GENESIS_FILE")
	}
	if cfg.OwnerID == "" {
		cfg.OwnerID = os.Getenv("OWNER_ID")
	}
	if cfg.OwnerID == "" && cfg.GenesisFile == "" {
		return Config{}, errors.New("owner required (use --owner, OWNER_ID env or a genesis file)")
	}

	if cfg.ClockMode == "" {
		cfg.ClockMode = os.Getenv("CLOCK_MODE")
		if cfg.ClockMode == "" {
			cfg.ClockMode = ClockManual
		}
	}
	if cfg.ClockMode != ClockManual && cfg.ClockMode != ClockWall {
		return Config{}, errors.New("clock mode must be manual or wall")
	}

	if cfg.RateLimit == 0 {
		if rateStr := os.Getenv("RATE_LIMIT"); rateStr != "" {
			rate, err := strconv.ParseFloat(rateStr, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = rate
		} else {
			cfg.RateLimit = 20 // default
		}
	}
	if cfg.RateLimit < 0 {
		return Config{}, errors.New("rate limit must not be negative")
	}

	if !cfg.Debug {
		if debugStr := os.Getenv("DEBUG"); debugStr != "" {
			debug, err := strconv.ParseBool(debugStr)
			if err != nil {
				return Config{}, errors.New("invalid DEBUG env variable")
			}
			cfg.Debug = debug
		}
	}

	if !cfg.TrustProxy {
		if trustStr := os.Getenv("TRUST_PROXY"); trustStr != "" {
			trust, err := strconv.ParseBool(trustStr)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadGenesis reads the genesis file on top of the defaults. An empty path
// returns the defaults.
func LoadGenesis(path string) (models.Genesis, error) {
	g := models.DefaultGenesis()
	if path == "" {
		return g, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Genesis{}, fmt.Errorf("failed to read genesis: %w", err)
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return models.Genesis{}, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return g, nil
}

// Genesis resolves the genesis for cfg. The owner flag overrides the file.
func Genesis(cfg Config) (models.Genesis, error) {
	g, err := LoadGenesis(cfg.GenesisFile)
	if err != nil {
		return models.Genesis{}, err
	}
	if cfg.OwnerID != "" {
		g.Owner = cfg.OwnerID
	}
	if g.Owner == "" {
		return models.Genesis{}, errors.New("genesis owner required")
	}
	if g.MaxCandidatesPerRound == 0 {
		return models.Genesis{}, errors.New("max_candidates_per_round must be positive")
	}
	return g, nil
}
