package mock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"tx-latency-bench/core"
	"tx-latency-bench/core/configs"
)

// ErrRejected is returned by every contract call of a client created with the
// `fail` parameter.
var ErrRejected = errors.New("mock transaction rejected")

const baseAsset = "mock-base-asset"

type BlockchainInterface struct {
}

func (i *BlockchainInterface) Client(chain *configs.ChainConfig) (core.BlockchainClient, error) {
	client, err := NewClient(chain.Params)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewClient creates a mock client from its parameters: `delay` is the number
// of seconds each transaction takes to be final, `fail` makes every contract
// call fail.
func NewClient(params map[string]string) (*BlockchainClient, error) {
	var delay float64
	var fail bool
	var err error

	zap.L().Debug("new mock client", zap.Any("params", params))

	value, ok := params["delay"]
	if !ok {
		delay = 0
	} else {
		delay, err = strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid delay parameter: '%s'", value)
		}

		if delay < 0 {
			return nil, fmt.Errorf("invalid delay parameter: %f", delay)
		}
	}

	value, ok = params["fail"]
	if ok {
		fail, err = strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid fail parameter: '%s'", value)
		}
	}

	for key := range params {
		if key != "delay" && key != "fail" {
			return nil, fmt.Errorf("unknown parameter '%s'", key)
		}
	}

	return &BlockchainClient{
		delay:    time.Duration(delay * float64(time.Second)),
		fail:     fail,
		balances: make(map[string]uint64),
	}, nil
}

type BlockchainClient struct {
	delay time.Duration
	fail  bool

	lock      sync.Mutex
	connected bool
	connects  int
	clears    int
	nextTx    uint64
	balances  map[string]uint64
	calls     []core.TransferCall
}

func (c *BlockchainClient) Connect(context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.connected {
		c.connects++
		c.connected = true
	}

	return nil
}

func (c *BlockchainClient) ClearCaches() {
	c.lock.Lock()
	c.connected = false
	c.clears++
	c.lock.Unlock()
}

func (c *BlockchainClient) BaseAssetID() string {
	return baseAsset
}

func (c *BlockchainClient) Address(signer configs.SignerKind) (string, error) {
	switch signer {
	case configs.SignerAccount, configs.SignerPredicate:
		return "mock-" + string(signer), nil
	}

	return "", fmt.Errorf("%w '%s'", configs.ErrUnknownSigner, signer)
}

// wait blocks for the configured delay and returns the receipt of a new
// transaction.
func (c *BlockchainClient) wait(ctx context.Context) (*core.TransferReceipt, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.nextTx++

	return &core.TransferReceipt{
		TxHash:      fmt.Sprintf("mock-tx-%d", c.nextTx),
		BlockNumber: c.nextTx,
	}, nil
}

func (c *BlockchainClient) Transfer(ctx context.Context, signer configs.SignerKind, to string, amount uint64) (*core.TransferReceipt, error) {
	if _, err := c.Address(signer); err != nil {
		return nil, err
	}

	receipt, err := c.wait(ctx)
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.balances[to] += amount
	c.lock.Unlock()

	zap.L().Debug("mock transfer", zap.String("to", to), zap.Uint64("amount", amount))

	return receipt, nil
}

func (c *BlockchainClient) ExecuteTransfer(ctx context.Context, call *core.TransferCall) (*core.TransferReceipt, error) {
	if _, err := c.Address(call.Signer); err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.calls = append(c.calls, *call)
	c.lock.Unlock()

	if c.fail {
		return nil, ErrRejected
	}

	return c.wait(ctx)
}

func (c *BlockchainClient) Close() {}

// Balance returns the amount transferred to an address so far.
func (c *BlockchainClient) Balance(address string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.balances[address]
}

// Calls returns the contract calls received so far.
func (c *BlockchainClient) Calls() []core.TransferCall {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]core.TransferCall(nil), c.calls...)
}

// Connects returns how many times chain parameters were fetched.
func (c *BlockchainClient) Connects() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.connects
}

// Clears returns how many times caches were cleared.
func (c *BlockchainClient) Clears() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.clears
}
