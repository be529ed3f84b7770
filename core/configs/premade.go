package configs

// Gas limit used by the predicate scenario, which sets it explicitly instead
// of asking the provider for an estimate.
const PredicateGasLimit uint64 = 200000

// PremadeBenchConfig returns the benchmark run when no configuration file is
// given: a contract transfer with one and four outputs whose gas limit is left
// for the provider to resolve, and a transfer signed by a freshly funded
// predicate with an explicit limit.
func PremadeBenchConfig() *BenchConfig {
	return &BenchConfig{
		Name:        "contract-transfer",
		Description: "latency of contract transfers until the receipt is available",
		Scenarios: []ScenarioConfig{
			{
				Name:    "contract-transfer-1x-estimated",
				Signer:  SignerAccount,
				Outputs: 1,
				Amount:  100,
			},
			{
				Name:    "contract-transfer-4x-estimated",
				Signer:  SignerAccount,
				Outputs: 4,
				Amount:  100,
			},
			{
				Name:     "contract-transfer-with-predicate",
				Signer:   SignerPredicate,
				Outputs:  1,
				Amount:   250,
				GasLimit: PredicateGasLimit,
				Fund:     500,
			},
		},
	}
}
