package nethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"tx-latency-bench/core/configs"
)

type account struct {
	address common.Address
	private *ecdsa.PrivateKey
}

func newAccount(key *configs.ChainKey) (*account, error) {
	private, err := crypto.ToECDSA(key.PrivateKey)
	if err != nil {
		return nil, err
	}

	address := crypto.PubkeyToAddress(private.PublicKey)

	if key.Address != "" {
		expected, err := parseAddress(key.Address)
		if err != nil {
			return nil, err
		}

		if expected != address {
			return nil, fmt.Errorf("key controls %s, not %s", address.Hex(), expected.Hex())
		}
	}

	return &account{
		address: address,
		private: private,
	}, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address '%s'", s)
	}

	return common.HexToAddress(s), nil
}

// sign signs a legacy transaction for the given chain.
func (a *account) sign(chainID *big.Int, tx *types.Transaction) (*types.Transaction, error) {
	return types.SignTx(tx, types.NewEIP155Signer(chainID), a.private)
}

type nonceManager interface {
	nextNonce(context.Context, common.Address) (uint64, error)
	resync(common.Address)
}

// staticNonceManager fetches the pending nonce of an address once, then hands
// out consecutive nonces locally.
type staticNonceManager struct {
	client backend
	lock   sync.Mutex
	bases  map[common.Address]*staticNonce
}

type staticNonce struct {
	lock   sync.Mutex
	synced bool
	next   uint64
}

func newStaticNonceManager(client backend) *staticNonceManager {
	return &staticNonceManager{
		client: client,
		bases:  make(map[common.Address]*staticNonce),
	}
}

func (m *staticNonceManager) slot(from common.Address) *staticNonce {
	m.lock.Lock()
	defer m.lock.Unlock()

	ret, ok := m.bases[from]
	if !ok {
		ret = &staticNonce{}
		m.bases[from] = ret
	}

	return ret
}

func (m *staticNonceManager) nextNonce(ctx context.Context, from common.Address) (uint64, error) {
	slot := m.slot(from)

	slot.lock.Lock()
	defer slot.lock.Unlock()

	if !slot.synced {
		base, err := m.client.PendingNonceAt(ctx, from)
		if err != nil {
			zap.L().Error("fail to fetch pending nonce",
				zap.String("address", from.Hex()),
				zap.Error(err))
			return 0, err
		}

		zap.L().Debug("pending nonce",
			zap.String("address", from.Hex()),
			zap.Uint64("nonce", base))

		slot.next = base
		slot.synced = true
	}

	nonce := slot.next
	slot.next++

	return nonce, nil
}

// resync forgets the local nonce of an address, the next call asks the
// provider again.
func (m *staticNonceManager) resync(from common.Address) {
	slot := m.slot(from)

	slot.lock.Lock()
	slot.synced = false
	slot.lock.Unlock()
}

type parameters struct {
	chainId  *big.Int
	gasPrice *big.Int
}

type parameterProvider interface {
	getParams(context.Context) (*parameters, error)
	clear()
}

// lazyParameterProvider asks the provider for the chain parameters the first
// time they are needed and keeps them until cleared.
type lazyParameterProvider struct {
	client backend
	lock   sync.Mutex
	inner  *parameters
}

func newLazyParameterProvider(client backend) *lazyParameterProvider {
	return &lazyParameterProvider{
		client: client,
	}
}

func (p *lazyParameterProvider) getParams(ctx context.Context) (*parameters, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.inner != nil {
		return p.inner, nil
	}

	params, err := newDirectParameterProvider(p.client).getParams(ctx)
	if err != nil {
		return nil, err
	}

	p.inner = params

	return params, nil
}

func (p *lazyParameterProvider) clear() {
	p.lock.Lock()
	p.inner = nil
	p.lock.Unlock()
}

type directParameterProvider struct {
	client backend
}

func newDirectParameterProvider(client backend) *directParameterProvider {
	return &directParameterProvider{
		client: client,
	}
}

func (p *directParameterProvider) getParams(ctx context.Context) (*parameters, error) {
	var params parameters
	var err error

	params.chainId, err = p.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}

	params.gasPrice, err = p.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas price: %w", err)
	}

	zap.L().Debug("fetched chain parameters",
		zap.String("chainID", params.chainId.String()),
		zap.String("gasPrice", params.gasPrice.String()))

	return &params, nil
}

func (p *directParameterProvider) clear() {}
