package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/getmockd/querygen/pkg/querygen"
)

// Environment variable names
const (
	EnvMaxDepth     = "QUERYGEN_MAX_DEPTH"
	EnvNullStrategy = "QUERYGEN_NULL_STRATEGY"
	EnvQueryType    = "QUERYGEN_QUERY_TYPE"
	EnvSeed         = "QUERYGEN_SEED"
)

// ApplyEnv overrides config values from environment variables. Only
// variables that are set are applied.
func (f *File) ApplyEnv() error {
	// QUERYGEN_MAX_DEPTH
	if v := os.Getenv(EnvMaxDepth); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			return fmt.Errorf("%w: %s=%q is not a non-negative integer", ErrInvalidConfig, EnvMaxDepth, v)
		}
		f.MaxDepth = depth
	}

	// QUERYGEN_NULL_STRATEGY
	if v := os.Getenv(EnvNullStrategy); v != "" {
		strategy, err := querygen.ParseNullGenerationStrategy(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvNullStrategy, err)
		}
		f.NullGenerationStrategy = string(strategy)
	}

	// QUERYGEN_QUERY_TYPE
	if v := os.Getenv(EnvQueryType); v != "" {
		queryType, err := querygen.ParseQueryType(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvQueryType, err)
		}
		f.QueryType = string(queryType)
	}

	// QUERYGEN_SEED
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an unsigned integer", ErrInvalidConfig, EnvSeed, v)
		}
		f.Seed = seed
	}

	return nil
}
