package nethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestPackExecuteTransfer(t *testing.T) {
	recipient := common.HexToAddress("0x3438d5c33bc1f8c4ef69affb891a58b1d67f8ad7")

	data, err := packExecuteTransfer([]transferParam{
		{Recipient: recipient, AssetId: common.Address{}, Amount: big.NewInt(100)},
	})
	require.NoError(t, err)

	selector := crypto.Keccak256([]byte("executeTransfer((address,address,uint256)[])"))[:4]
	require.Equal(t, selector, data[:4])

	// offset, length, then the single tuple
	require.Len(t, data, 4+32+32+96)
	require.Equal(t, big.NewInt(32), new(big.Int).SetBytes(data[4:36]))
	require.Equal(t, big.NewInt(1), new(big.Int).SetBytes(data[36:68]))
	require.Equal(t, recipient, common.BytesToAddress(data[68:100]))
	require.Equal(t, common.Address{}, common.BytesToAddress(data[100:132]))
	require.Equal(t, big.NewInt(100), new(big.Int).SetBytes(data[132:164]))
}

func TestPackExecuteTransferEmpty(t *testing.T) {
	data, err := packExecuteTransfer(nil)
	require.NoError(t, err)
	require.Len(t, data, 4+32+32)
}
