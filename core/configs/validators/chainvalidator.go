package validators

import (
	"errors"
	"fmt"

	"tx-latency-bench/core/configs"
)

// ValidateChainConfig checks that the chain can be reached and that the keys
// needed by every chain implementation are present.
func ValidateChainConfig(c *configs.ChainConfig) (bool, error) {
	switch c.Name {
	case configs.ChainMock:
		// No provider behind the mock.
		return true, nil
	case configs.ChainEthereum:
	default:
		return false, fmt.Errorf("unknown chain '%s'", c.Name)
	}

	if len(c.ProviderURL) == 0 {
		return false, errors.New("missing provider url")
	}

	if c.AccountKey == nil {
		return false, errors.New("missing account private key")
	}

	if len(c.ContractID) == 0 {
		return false, errors.New("missing transfer contract id")
	}

	return true, nil
}
