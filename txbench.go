package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"tx-latency-bench/blockchains/mock"
	"tx-latency-bench/blockchains/nethereum"
	"tx-latency-bench/core"
	"tx-latency-bench/core/configs"
)

func buildSystemMap() map[string]core.BlockchainInterface {
	return map[string]core.BlockchainInterface{
		configs.ChainEthereum: &nethereum.BlockchainInterface{},
		configs.ChainMock:     &mock.BlockchainInterface{},
	}
}

func main() {
	if err := core.PrepareLogger(false); err != nil {
		fmt.Fprintf(os.Stderr, "txbench: %s\n", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := core.DefineArguments(buildSystemMap()).ExecuteContext(ctx)
	stop()

	if err != nil {
		zap.L().Error(err.Error())
		_ = zap.L().Sync()
		os.Exit(1)
	}

	_ = zap.L().Sync()
}
