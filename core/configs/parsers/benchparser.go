// Package parsers presents the parsing of configuration files and of the
// environment, which will generate the related information necessary for the
// use in the benchmark.
package parsers

import (
	"os"

	"gopkg.in/yaml.v3"

	"tx-latency-bench/core/configs"
	"tx-latency-bench/core/configs/validators"
)

// ParseBenchConfig parses the benchmark configuration file from YAML.
// Reads the filepath to see if we can extract the YAML.
func ParseBenchConfig(filepath string) (*configs.BenchConfig, error) {
	// Get the configuration information from the filepath
	configFileBytes, err := os.ReadFile(filepath)

	if err != nil {
		return nil, err
	}

	return parseBenchYaml(configFileBytes, filepath)
}

// parseBenchYaml provides the full unmarshal of the YAML and checks that the
// scenarios can be run.
func parseBenchYaml(content []byte, path string) (*configs.BenchConfig, error) {
	// Try to read the YAML.
	var benchConfig configs.BenchConfig

	err := yaml.Unmarshal(content, &benchConfig)

	if err != nil {
		return nil, err
	}

	// Check validity
	if ok, err := validators.ValidateBenchConfig(&benchConfig); !ok {
		return nil, err
	}

	benchConfig.Path = path

	return &benchConfig, nil
}

// GetTotalNumberOfTransactions calculates the total number of measured
// transactions in the entire benchmark
func GetTotalNumberOfTransactions(config *configs.BenchConfig) int {
	totalNumberOfTransactions := 0

	for i := range config.Scenarios {
		totalNumberOfTransactions += config.Scenarios[i].RunCount()
	}

	return totalNumberOfTransactions
}
