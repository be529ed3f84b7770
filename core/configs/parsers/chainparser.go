package parsers

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tx-latency-bench/core/configs"
	"tx-latency-bench/core/configs/validators"
)

// Keys of the chain settings, read from the environment or a dotenv file.
const (
	KeyChain            = "chain"
	KeyChainParams      = "chain_params"
	KeyProviderURL      = "provider_url"
	KeyAccountKey       = "account_pvk_1"
	KeyPredicateKey     = "predicate_pvk"
	KeyPredicateAddress = "predicate_address"
	KeyContractID       = "transfer_contract_id"
)

// ParseChainConfig builds the chain configuration from the settings known to
// v (environment, dotenv file, flags).
func ParseChainConfig(v *viper.Viper) (*configs.ChainConfig, error) {
	chainConfig := configs.ChainConfig{
		Name:             strings.ToLower(v.GetString(KeyChain)),
		ProviderURL:      v.GetString(KeyProviderURL),
		PredicateAddress: v.GetString(KeyPredicateAddress),
		ContractID:       v.GetString(KeyContractID),
	}

	if chainConfig.Name == "" {
		chainConfig.Name = configs.ChainEthereum
	}

	params, err := parseParams(v.GetString(KeyChainParams))
	if err != nil {
		return nil, err
	}
	chainConfig.Params = params

	if raw := v.GetString(KeyAccountKey); raw != "" {
		chainConfig.AccountKey, err = configs.ParseChainKey(raw, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToUpper(KeyAccountKey), err)
		}
	}

	if raw := v.GetString(KeyPredicateKey); raw != "" {
		chainConfig.PredicateKey, err = configs.ParseChainKey(raw, chainConfig.PredicateAddress)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToUpper(KeyPredicateKey), err)
		}
	}

	if ok, err := validators.ValidateChainConfig(&chainConfig); !ok {
		return nil, err
	}

	zap.L().Debug("chain configuration loaded",
		zap.String("chain", chainConfig.Name),
		zap.String("provider", chainConfig.ProviderURL),
		zap.String("contract", chainConfig.ContractID),
		zap.Bool("predicate", chainConfig.PredicateKey != nil))

	return &chainConfig, nil
}

// parseParams reads "key=value" pairs separated by commas.
func parseParams(raw string) (map[string]string, error) {
	params := make(map[string]string)

	for _, element := range strings.Split(raw, ",") {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}

		eqindex := strings.Index(element, "=")
		if eqindex <= 0 {
			return nil, fmt.Errorf("unexpected chain parameter '%s'", element)
		}

		params[strings.TrimSpace(element[:eqindex])] = strings.TrimSpace(element[eqindex+1:])
	}

	return params, nil
}
