package configs

import "time"

// Benchmark configuration structure, all the scenarios to run in order.
type BenchConfig struct {
	Name        string           `yaml:"name"`                  // Name of the benchmark
	Description string           `yaml:"description,omitempty"` // Description of what it is
	Scenarios   []ScenarioConfig `yaml:"scenarios"`             // Scenarios, run one after the other
	Path        string           `yaml:"-"`                     // File the configuration was read from, empty when premade
}

// A scenario submits one transfer call per run and times it until the
// receipt is available.
type ScenarioConfig struct {
	Name        string     `yaml:"name"`                  // Label printed in front of each duration
	Signer      SignerKind `yaml:"signer,omitempty"`      // Who signs the measured call
	Outputs     int        `yaml:"outputs"`               // Number of transfer params in the call
	Amount      uint64     `yaml:"amount"`                // Amount sent by each transfer param
	GasLimit    uint64     `yaml:"gasLimit,omitempty"`    // Explicit gas limit, 0 lets the provider estimate
	Fund        uint64     `yaml:"fund,omitempty"`        // Amount sent to the predicate before timing
	KeepCaches  bool       `yaml:"keepCaches,omitempty"`  // Do not clear chain parameter caches before timing
	Runs        int        `yaml:"runs,omitempty"`        // Number of measured runs (default 1)
	Concurrency int        `yaml:"concurrency,omitempty"` // Runs in flight at the same time (default 1)
	Timeout     Duration   `yaml:"timeout,omitempty"`     // Deadline of a single run, 0 for none
}

// Forward is the base asset amount attached to the call.
func (sc *ScenarioConfig) Forward() uint64 {
	return sc.Amount * uint64(sc.Outputs)
}

// SignedBy returns the signer of the measured call, the main account unless
// stated otherwise.
func (sc *ScenarioConfig) SignedBy() SignerKind {
	if sc.Signer == "" {
		return SignerAccount
	}
	return sc.Signer
}

// RunCount returns the number of runs, defaulting to one.
func (sc *ScenarioConfig) RunCount() int {
	if sc.Runs <= 0 {
		return 1
	}
	return sc.Runs
}

// Parallelism returns the concurrency limit, defaulting to one.
func (sc *ScenarioConfig) Parallelism() int {
	if sc.Concurrency <= 0 {
		return 1
	}
	return sc.Concurrency
}

// RunTimeout returns the per-run deadline, zero when unbounded.
func (sc *ScenarioConfig) RunTimeout() time.Duration {
	return time.Duration(sc.Timeout)
}
