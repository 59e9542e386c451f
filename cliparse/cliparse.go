package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabasePath string
	JWTSecret    string
	TokenHours   int
	AssignCap    int
}

// ParseFlags validates flags and fills in defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("billdesk", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabasePath, "d", "", "SQLite database path")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	// Tunables
	fs.IntVar(&cfg.TokenHours, "token-hours", 0, "Session token lifetime in hours")
	fs.IntVar(&cfg.AssignCap, "cap", 0, "Max bills assignable to one user")

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
			cfg.Port = 3319 // default
		}
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = os.Getenv("DATABASE_PATH")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "./data/billdesk.db"
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.TokenHours == 0 {
		if hoursStr := os.Getenv("TOKEN_HOURS"); hoursStr != "" {
			hours, err := strconv.Atoi(hoursStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_HOURS env variable")
			}
			cfg.TokenHours = hours
		} else {
			cfg.TokenHours = 24
		}
	}

	if cfg.AssignCap == 0 {
		if capStr := os.Getenv("ASSIGN_CAP"); capStr != "" {
			billCap, err := strconv.Atoi(capStr)
			if err != nil {
				return Config{}, errors.New("invalid ASSIGN_CAP env variable")
			}
			cfg.AssignCap = billCap
		} else {
			cfg.AssignCap = 3
		}
	}
	if cfg.AssignCap < 1 {
		return Config{}, errors.New("assignment cap must be at least 1")
	}

	return cfg, nil
}
