package nethereum

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ABI of the transfer contract. Each element of `params` sends `amount` of
// `assetId` to `recipient`, the zero asset being the native coin forwarded
// with the call.
const contractTransferABI = `[
  {
    "type": "function",
    "name": "executeTransfer",
    "stateMutability": "payable",
    "inputs": [
      {
        "name": "params",
        "type": "tuple[]",
        "components": [
          { "name": "recipient", "type": "address" },
          { "name": "assetId", "type": "address" },
          { "name": "amount", "type": "uint256" }
        ]
      }
    ],
    "outputs": []
  }
]`

const executeTransferMethod = "executeTransfer"

type transferParam struct {
	Recipient common.Address `abi:"recipient"`
	AssetId   common.Address `abi:"assetId"`
	Amount    *big.Int       `abi:"amount"`
}

var contractTransfer = mustParseABI(contractTransferABI)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}

	return parsed
}

// packExecuteTransfer returns the call data of executeTransfer(params).
func packExecuteTransfer(params []transferParam) ([]byte, error) {
	return contractTransfer.Pack(executeTransferMethod, params)
}
