package validators

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tx-latency-bench/core/configs"
)

// Validates all fields of the benchmark configuration
// Determines the validity and returns a boolean whether it is
// valid or invalid.
func ValidateBenchConfig(c *configs.BenchConfig) (bool, error) {
	// Empty name is an error
	if len(c.Name) == 0 {
		return false, errors.New("missing benchmark name")
	}

	// Description can be omitted, but we will warn.
	if len(c.Description) == 0 {
		zap.L().Warn("Missing description in configuration file.")
	}

	// Scenarios cannot be empty.
	if len(c.Scenarios) == 0 {
		return false, errors.New("no scenarios provided")
	}

	names := make(map[string]bool, len(c.Scenarios))

	for i := range c.Scenarios {
		if ok, err := validateScenario(&c.Scenarios[i]); !ok {
			return false, fmt.Errorf("scenario %d: %w", i, err)
		}

		if names[c.Scenarios[i].Name] {
			return false, fmt.Errorf("duplicate scenario name '%s'", c.Scenarios[i].Name)
		}
		names[c.Scenarios[i].Name] = true
	}

	return true, nil
}

func validateScenario(s *configs.ScenarioConfig) (bool, error) {
	if len(s.Name) == 0 {
		return false, errors.New("missing scenario name")
	}

	switch s.SignedBy() {
	case configs.SignerAccount, configs.SignerPredicate:
	default:
		return false, fmt.Errorf("%w '%s'", configs.ErrUnknownSigner, s.Signer)
	}

	if s.Outputs <= 0 {
		return false, fmt.Errorf("outputs %d must be positive", s.Outputs)
	}

	if s.Runs < 0 {
		return false, fmt.Errorf("runs %d cannot be negative", s.Runs)
	}

	if s.Concurrency < 0 {
		return false, fmt.Errorf("concurrency %d cannot be negative", s.Concurrency)
	}

	if s.Timeout < 0 {
		return false, errors.New("timeout cannot be negative")
	}

	if s.Amount == 0 {
		zap.L().Warn("Scenario transfers a zero amount.", zap.String("scenario", s.Name))
	}

	return true, nil
}

// ValidateBenchForChain checks that the chain configuration can sign every
// scenario of the benchmark.
func ValidateBenchForChain(b *configs.BenchConfig, c *configs.ChainConfig) (bool, error) {
	// The mock chain has no keys.
	if c.Name == configs.ChainMock {
		return true, nil
	}

	for i := range b.Scenarios {
		s := &b.Scenarios[i]

		if s.SignedBy() == configs.SignerPredicate && c.PredicateKey == nil {
			return false, fmt.Errorf("scenario '%s' is signed by the predicate but no predicate key is set", s.Name)
		}

		if s.Fund > 0 && c.PredicateKey == nil && c.PredicateAddress == "" {
			return false, fmt.Errorf("scenario '%s' funds the predicate but no predicate address is set", s.Name)
		}
	}

	return true, nil
}
