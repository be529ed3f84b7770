package core

import (
	"context"
	"errors"

	"tx-latency-bench/core/configs"
)

// ErrTransactionFailed is returned when a transaction made it into a block
// but did not execute successfully.
var ErrTransactionFailed = errors.New("transaction failed")

type BlockchainInterface interface {
	// Create a client of this blockchain reaching the provider described
	// by `chain`. The client may hold a connection until closed.
	//
	Client(chain *configs.ChainConfig) (BlockchainClient, error)
}

type BlockchainClient interface {
	// Fetch the chain parameters used to build transactions (chain id,
	// gas price, ...) unless they are cached already.
	//
	Connect(ctx context.Context) error

	// Drop the cached chain parameters so that the next `Connect` asks the
	// provider again.
	//
	ClearCaches()

	// Identifier of the asset the chain pays fees with.
	//
	BaseAssetID() string

	// Address controlled by the given signer.
	//
	Address(signer configs.SignerKind) (string, error)

	// Move `amount` of the base asset from `signer` to the address `to`
	// and wait for the transaction to be final.
	//
	Transfer(ctx context.Context, signer configs.SignerKind, to string, amount uint64) (*TransferReceipt, error)

	// Submit a call to the transfer contract and wait for the transaction
	// to be final.
	//
	ExecuteTransfer(ctx context.Context, call *TransferCall) (*TransferReceipt, error)

	Close()
}

// TransferParam is one output of a transfer call.
type TransferParam struct {
	Recipient string
	AssetID   string
	Amount    uint64
}

// TransferCall is a call of the transfer contract.
type TransferCall struct {
	Signer   configs.SignerKind
	Params   []TransferParam
	Forward  uint64 // Base asset amount attached to the call
	GasLimit uint64 // 0 lets the provider estimate it
}

// TransferReceipt describes a final transaction.
type TransferReceipt struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}
