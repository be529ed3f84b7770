package mock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tx-latency-bench/core"
	"tx-latency-bench/core/configs"
)

func TestNewClientParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(nil)
		require.NoError(t, err)
		require.Zero(t, client.delay)
		require.False(t, client.fail)
	})

	t.Run("delay", func(t *testing.T) {
		client, err := NewClient(map[string]string{"delay": "0.25"})
		require.NoError(t, err)
		require.Equal(t, 250*time.Millisecond, client.delay)
	})

	for name, params := range map[string]map[string]string{
		"invalid delay":  {"delay": "soon"},
		"negative delay": {"delay": "-1"},
		"invalid fail":   {"fail": "maybe"},
		"unknown":        {"speed": "1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewClient(params)
			require.Error(t, err)
		})
	}
}

func TestClientTransfers(t *testing.T) {
	client, err := (&BlockchainInterface{}).Client(&configs.ChainConfig{Name: configs.ChainMock})
	require.NoError(t, err)

	mock := client.(*BlockchainClient)
	ctx := context.Background()

	predicate, err := client.Address(configs.SignerPredicate)
	require.NoError(t, err)

	_, err = client.Transfer(ctx, configs.SignerAccount, predicate, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(500), mock.Balance(predicate))

	call := &core.TransferCall{
		Signer:  configs.SignerPredicate,
		Params:  []core.TransferParam{{Recipient: "mock-account", AssetID: client.BaseAssetID(), Amount: 250}},
		Forward: 250,
	}

	receipt, err := client.ExecuteTransfer(ctx, call)
	require.NoError(t, err)
	require.Equal(t, "mock-tx-2", receipt.TxHash)
	require.Equal(t, []core.TransferCall{*call}, mock.Calls())

	_, err = client.Address("other")
	require.ErrorIs(t, err, configs.ErrUnknownSigner)
}

func TestClientCaches(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, client.Connect(ctx))
	require.NoError(t, client.Connect(ctx))
	require.Equal(t, 1, client.Connects())

	client.ClearCaches()
	require.NoError(t, client.Connect(ctx))
	require.Equal(t, 2, client.Connects())
	require.Equal(t, 1, client.Clears())
}

func TestClientFail(t *testing.T) {
	client, err := NewClient(map[string]string{"fail": "true"})
	require.NoError(t, err)

	_, err = client.ExecuteTransfer(context.Background(), &core.TransferCall{Signer: configs.SignerAccount})
	require.ErrorIs(t, err, ErrRejected)
	require.Len(t, client.Calls(), 1)
}

func TestClientDelayCancelled(t *testing.T) {
	client, err := NewClient(map[string]string{"delay": "10"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = client.ExecuteTransfer(ctx, &core.TransferCall{Signer: configs.SignerAccount})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
