package nethereum

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

const defaultPollInterval = 250 * time.Millisecond

type transactionConfirmer interface {
	confirm(context.Context, common.Hash) (*types.Receipt, error)
}

// pollTransactionConfirmer asks the provider for the receipt of a transaction
// until it exists.
type pollTransactionConfirmer struct {
	client   backend
	interval time.Duration
}

func newPollTransactionConfirmer(client backend, interval time.Duration) *pollTransactionConfirmer {
	return &pollTransactionConfirmer{
		client:   client,
		interval: interval,
	}
}

func (c *pollTransactionConfirmer) confirm(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil {
			zap.L().Debug("transaction final",
				zap.String("hash", hash.Hex()),
				zap.Uint64("block", blockNumber(receipt)))
			return receipt, nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
