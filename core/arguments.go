package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tx-latency-bench/core/configs"
	"tx-latency-bench/core/configs/parsers"
	"tx-latency-bench/core/configs/validators"
	"tx-latency-bench/core/results"
)

const defaultEnvFile = ".env"

// All the available arguments
type Arguments struct {
	BenchConfigPath string // Path to the bench configuration, premade scenarios when empty
	EnvFile         string // Dotenv file holding the chain settings
	OutputDir       string // Directory receiving the results, none when empty
	PushGateway     string // Pushgateway url receiving the metrics, none when empty
	Summary         bool   // Print a summary table after the run
	Verbose         bool   // Log debug messages
}

// DefineArguments returns the `txbench` command, running the benchmark on one
// of the given chains.
func DefineArguments(chains map[string]BlockchainInterface) *cobra.Command {
	var args Arguments

	v := viper.New()

	root := &cobra.Command{
		Use:           "txbench",
		Short:         "Measure how long transactions take to be final",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return PrepareLogger(args.Verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&args.Verbose, "verbose", "v", false, "log debug messages")
	root.PersistentFlags().StringVarP(&args.BenchConfigPath, "config", "c", "", "--config=/path/to/bench.yaml (default premade scenarios)")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark scenarios and print one duration per run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnv(v, args.EnvFile); err != nil {
				return err
			}
			return runBenchmark(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), &args, v, chains)
		},
	}

	run.Flags().StringVar(&args.EnvFile, "env-file", "", "dotenv file with the chain settings (default .env when present)")
	run.Flags().StringVarP(&args.OutputDir, "output", "o", "", "directory to write the results to")
	run.Flags().StringVar(&args.PushGateway, "push-gateway", "", "prometheus pushgateway url")
	run.Flags().BoolVar(&args.Summary, "summary", false, "print a summary table on stderr")
	run.Flags().String("chain", "", "chain to benchmark (ethereum, mock)")
	run.Flags().String("provider-url", "", "url of the chain provider")
	run.Flags().String("chain-params", "", "chain parameters, e.g. poll-interval=100ms,params=direct")

	_ = v.BindPFlag(parsers.KeyChain, run.Flags().Lookup("chain"))
	_ = v.BindPFlag(parsers.KeyProviderURL, run.Flags().Lookup("provider-url"))
	_ = v.BindPFlag(parsers.KeyChainParams, run.Flags().Lookup("chain-params"))

	scenarios := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios of the bench configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bench, err := loadBench(args.BenchConfigPath)
			if err != nil {
				return err
			}
			return printScenarios(cmd.OutOrStdout(), bench)
		},
	}

	root.AddCommand(run, scenarios)

	return root
}

// loadEnv reads the dotenv file into v. Without an explicit file, `.env` is
// read if it exists. The environment always takes precedence.
func loadEnv(v *viper.Viper, path string) error {
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	zap.L().Debug("env file loaded", zap.String("path", path))

	return nil
}

func loadBench(path string) (*configs.BenchConfig, error) {
	if path == "" {
		zap.L().Debug("use premade scenarios")
		return configs.PremadeBenchConfig(), nil
	}

	zap.L().Info("loading config", zap.String("bench config", path))

	return parsers.ParseBenchConfig(path)
}

func runBenchmark(ctx context.Context, out, errOut io.Writer, args *Arguments, v *viper.Viper, chains map[string]BlockchainInterface) error {
	if ctx == nil {
		ctx = context.Background()
	}

	bench, err := loadBench(args.BenchConfigPath)
	if err != nil {
		return err
	}

	chain, err := parsers.ParseChainConfig(v)
	if err != nil {
		return err
	}

	if ok, err := validators.ValidateBenchForChain(bench, chain); !ok {
		return err
	}

	iface, ok := chains[chain.Name]
	if !ok {
		return fmt.Errorf("unsupported chain '%s'", chain.Name)
	}

	client, err := iface.Client(chain)
	if err != nil {
		return fmt.Errorf("create %s client: %w", chain.Name, err)
	}
	defer client.Close()

	var opts []RunnerOption
	var recorder *results.Recorder

	if args.PushGateway != "" {
		recorder = results.NewRecorder()
		opts = append(opts, WithRecorder(recorder))
	}

	zap.L().Info("run benchmark",
		zap.String("benchmark", bench.Name),
		zap.String("chain", chain.Name),
		zap.Int("transactions", parsers.GetTotalNumberOfTransactions(bench)))

	res, err := NewRunner(client, bench, out, opts...).Run(ctx)

	if recorder != nil {
		if perr := recorder.Push(args.PushGateway, "txbench"); perr != nil {
			err = errors.Join(err, perr)
		}
	}

	if err != nil {
		return err
	}

	if args.OutputDir != "" {
		path, err := results.WriteResultsToFile(bench.Path, *res, args.OutputDir)
		if err != nil {
			return err
		}
		zap.L().Info("results written", zap.String("path", path))
	}

	if args.Summary {
		return results.PrintSummary(errOut, *res)
	}

	return nil
}

func printScenarios(w io.Writer, bench *configs.BenchConfig) error {
	table := tablewriter.NewWriter(w)
	table.Header("Scenario", "Signer", "Outputs", "Amount", "Forward", "Gas", "Fund", "Runs")

	for _, s := range bench.Scenarios {
		gas := "estimated"
		if s.GasLimit > 0 {
			gas = strconv.FormatUint(s.GasLimit, 10)
		}

		err := table.Append(
			s.Name,
			string(s.SignedBy()),
			strconv.Itoa(s.Outputs),
			strconv.FormatUint(s.Amount, 10),
			strconv.FormatUint(s.Forward(), 10),
			gas,
			strconv.FormatUint(s.Fund, 10),
			strconv.Itoa(s.RunCount()),
		)
		if err != nil {
			return err
		}
	}

	return table.Render()
}
