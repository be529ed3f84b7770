package configs

// ChainConfig contains the information needed to reach the network provider
// and sign the benchmarked transactions.
type ChainConfig struct {
	Name             string            // Name of the chain implementation (ethereum, mock)
	ProviderURL      string            // Endpoint of the network provider
	AccountKey       *ChainKey         // Main account, funds the predicate and receives transfers
	PredicateKey     *ChainKey         // Predicate account, optional
	PredicateAddress string            // Funding target, defaults to the predicate key address
	ContractID       string            // Address of the transfer contract
	Params           map[string]string // Implementation specific parameters
}
