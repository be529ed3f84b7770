package nethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"

	"tx-latency-bench/core"
	"tx-latency-bench/core/configs"
)

// backend is the part of the ethclient API used to submit and follow
// transactions.
type backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

type BlockchainClient struct {
	client    backend
	contract  common.Address
	accounts  map[configs.SignerKind]*account
	predicate *common.Address // Funding target when there is no predicate key
	manager   nonceManager
	provider  parameterProvider
	confirmer transactionConfirmer
}

func newClient(client backend, contract common.Address, accounts map[configs.SignerKind]*account, predicate *common.Address, manager nonceManager, provider parameterProvider, confirmer transactionConfirmer) *BlockchainClient {
	return &BlockchainClient{
		client:    client,
		contract:  contract,
		accounts:  accounts,
		predicate: predicate,
		manager:   manager,
		provider:  provider,
		confirmer: confirmer,
	}
}

func (c *BlockchainClient) Connect(ctx context.Context) error {
	_, err := c.provider.getParams(ctx)
	return err
}

func (c *BlockchainClient) ClearCaches() {
	zap.L().Debug("clear chain parameter caches")
	c.provider.clear()
}

// BaseAssetID is the zero address, standing for the native coin.
func (c *BlockchainClient) BaseAssetID() string {
	return common.Address{}.Hex()
}

func (c *BlockchainClient) Address(signer configs.SignerKind) (string, error) {
	if from, ok := c.accounts[signer]; ok {
		return from.address.Hex(), nil
	}

	if signer == configs.SignerPredicate && c.predicate != nil {
		return c.predicate.Hex(), nil
	}

	return "", fmt.Errorf("%w '%s': no key configured", configs.ErrUnknownSigner, signer)
}

func (c *BlockchainClient) signer(kind configs.SignerKind) (*account, error) {
	from, ok := c.accounts[kind]
	if !ok {
		return nil, fmt.Errorf("%w '%s': no key configured", configs.ErrUnknownSigner, kind)
	}

	return from, nil
}

func (c *BlockchainClient) Transfer(ctx context.Context, signer configs.SignerKind, to string, amount uint64) (*core.TransferReceipt, error) {
	from, err := c.signer(signer)
	if err != nil {
		return nil, err
	}

	dest, err := parseAddress(to)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("transfer",
		zap.String("from", from.address.Hex()),
		zap.String("to", dest.Hex()),
		zap.Uint64("amount", amount))

	return c.submit(ctx, from, dest, new(big.Int).SetUint64(amount), params.TxGas, nil)
}

func (c *BlockchainClient) ExecuteTransfer(ctx context.Context, call *core.TransferCall) (*core.TransferReceipt, error) {
	from, err := c.signer(call.Signer)
	if err != nil {
		return nil, err
	}

	args := make([]transferParam, len(call.Params))
	for i, param := range call.Params {
		args[i].Recipient, err = parseAddress(param.Recipient)
		if err != nil {
			return nil, fmt.Errorf("param %d recipient: %w", i, err)
		}

		args[i].AssetId, err = parseAddress(param.AssetID)
		if err != nil {
			return nil, fmt.Errorf("param %d asset: %w", i, err)
		}

		args[i].Amount = new(big.Int).SetUint64(param.Amount)
	}

	data, err := packExecuteTransfer(args)
	if err != nil {
		return nil, err
	}

	value := new(big.Int).SetUint64(call.Forward)
	gas := call.GasLimit

	if gas == 0 {
		gas, err = c.estimateGas(ctx, from, value, data)
		if err != nil {
			return nil, err
		}
	}

	zap.L().Debug("execute transfer",
		zap.String("from", from.address.Hex()),
		zap.String("contract", c.contract.Hex()),
		zap.Int("outputs", len(args)),
		zap.Uint64("forward", call.Forward),
		zap.Uint64("gas", gas))

	return c.submit(ctx, from, c.contract, value, gas, data)
}

// estimateGas asks the provider for the gas limit of a contract call left
// without one.
func (c *BlockchainClient) estimateGas(ctx context.Context, from *account, value *big.Int, data []byte) (uint64, error) {
	chainParams, err := c.provider.getParams(ctx)
	if err != nil {
		return 0, err
	}

	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from.address,
		To:       &c.contract,
		GasPrice: chainParams.gasPrice,
		Value:    value,
		Data:     data,
	})
	if err != nil {
		return 0, fmt.Errorf("estimate gas: %w", err)
	}

	return gas, nil
}

func (c *BlockchainClient) submit(ctx context.Context, from *account, to common.Address, value *big.Int, gas uint64, data []byte) (*core.TransferReceipt, error) {
	chainParams, err := c.provider.getParams(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err := c.manager.nextNonce(ctx, from.address)
	if err != nil {
		return nil, err
	}

	stx, err := from.sign(chainParams.chainId, types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gas,
		GasPrice: chainParams.gasPrice,
		Data:     data,
	}))
	if err != nil {
		return nil, err
	}

	err = c.client.SendTransaction(ctx, stx)
	if err != nil {
		c.manager.resync(from.address)
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	zap.L().Debug("transaction submitted",
		zap.String("hash", stx.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	receipt, err := c.confirmer.confirm(ctx, stx.Hash())
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", stx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", core.ErrTransactionFailed, stx.Hash().Hex())
	}

	return &core.TransferReceipt{
		TxHash:      stx.Hash().Hex(),
		BlockNumber: blockNumber(receipt),
		GasUsed:     receipt.GasUsed,
	}, nil
}

func blockNumber(receipt *types.Receipt) uint64 {
	if receipt.BlockNumber == nil {
		return 0
	}
	return receipt.BlockNumber.Uint64()
}

func (c *BlockchainClient) Close() {
	c.client.Close()
}
