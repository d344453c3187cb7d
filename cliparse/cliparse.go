// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/burn-ballot/auth"
	"github.com/danielhkuo/burn-ballot/db"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	ProgramID      common.Address
	TokenProgramID common.Address
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var programID, tokenProgramID string

	fs := flag.NewFlagSet("burn-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Address namespaces
	fs.StringVar(&programID, "program-id", "", "Program address campaigns are derived under")
	fs.StringVar(&tokenProgramID, "token-program-id", "", "Program address token holdings are derived under")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

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

	if err := ParseDatabase(&cfg); err != nil {
		return Config{}, err
	}

	if programID == "" {
		programID = os.Getenv("PROGRAM_ID")
	}
	if programID == "" {
		return Config{}, errors.New("PROGRAM_ID required")
	}
	addr, err := auth.ParseAddress(programID)
	if err != nil {
		return Config{}, fmt.Errorf("invalid PROGRAM_ID: %w", err)
	}
	cfg.ProgramID = addr

	if tokenProgramID == "" {
		tokenProgramID = os.Getenv("TOKEN_PROGRAM_ID")
	}
	if tokenProgramID == "" {
		return Config{}, errors.New("TOKEN_PROGRAM_ID required")
	}
	addr, err = auth.ParseAddress(tokenProgramID)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_PROGRAM_ID: %w", err)
	}
	cfg.TokenProgramID = addr

	if cfg.ProgramID == cfg.TokenProgramID {
		return Config{}, errors.New("PROGRAM_ID and TOKEN_PROGRAM_ID must differ")
	}

	return cfg, nil
}

// ParseDatabase fills the database settings of cfg from the environment
// where flags left them empty
func ParseDatabase(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	if cfg.DatabaseType != db.TypeSQLite && cfg.DatabaseType != db.TypePostgres {
		return fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	return nil
}
