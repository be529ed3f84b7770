package nethereum

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"tx-latency-bench/core"
	"tx-latency-bench/core/configs"
)

type BlockchainInterface struct {
}

func (i *BlockchainInterface) Client(chain *configs.ChainConfig) (core.BlockchainClient, error) {
	zap.L().Debug("dial provider", zap.String("url", chain.ProviderURL))

	client, err := ethclient.Dial(chain.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", chain.ProviderURL, err)
	}

	ret, err := buildClient(chain, client)
	if err != nil {
		client.Close()
		return nil, err
	}

	return ret, nil
}

// buildClient reads the keys, addresses and parameters of the chain
// configuration into a client using the given backend.
func buildClient(chain *configs.ChainConfig, client backend) (*BlockchainClient, error) {
	var provider parameterProvider
	var predicate *common.Address

	accounts := make(map[configs.SignerKind]*account)

	contract, err := parseAddress(chain.ContractID)
	if err != nil {
		return nil, fmt.Errorf("transfer contract: %w", err)
	}

	if chain.AccountKey == nil {
		return nil, fmt.Errorf("missing account key")
	}

	accounts[configs.SignerAccount], err = newAccount(chain.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("account key: %w", err)
	}

	if chain.PredicateKey != nil {
		accounts[configs.SignerPredicate], err = newAccount(chain.PredicateKey)
		if err != nil {
			return nil, fmt.Errorf("predicate key: %w", err)
		}
	} else if chain.PredicateAddress != "" {
		address, err := parseAddress(chain.PredicateAddress)
		if err != nil {
			return nil, fmt.Errorf("predicate address: %w", err)
		}
		predicate = &address
	}

	interval := defaultPollInterval

	for key, value := range chain.Params {
		switch key {
		case "poll-interval":
			interval, err = time.ParseDuration(value)
			if err != nil || interval <= 0 {
				return nil, fmt.Errorf("invalid poll-interval parameter: '%s'", value)
			}
		case "params":
			provider, err = parseParamsMethod(value, client)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown parameter '%s'", key)
		}
	}

	if provider == nil {
		zap.L().Debug("use default params method 'lazy'")
		provider = newLazyParameterProvider(client)
	}

	zap.L().Debug("ethereum client ready",
		zap.String("account", accounts[configs.SignerAccount].address.Hex()),
		zap.String("contract", contract.Hex()),
		zap.Duration("pollInterval", interval))

	return newClient(client, contract, accounts, predicate,
		newStaticNonceManager(client), provider,
		newPollTransactionConfirmer(client, interval)), nil
}

// parseParamsMethod selects how chain parameters are fetched: "lazy" keeps
// them until caches are cleared, "direct" asks the provider on every
// transaction.
func parseParamsMethod(value string, client backend) (parameterProvider, error) {
	switch value {
	case "lazy":
		return newLazyParameterProvider(client), nil
	case "direct":
		return newDirectParameterProvider(client), nil
	}

	return nil, fmt.Errorf("unknown params method '%s'", value)
}
