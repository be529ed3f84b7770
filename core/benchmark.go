package core

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tx-latency-bench/core/configs"
	"tx-latency-bench/core/measure"
	"tx-latency-bench/core/results"
)

// Runner executes the scenarios of a benchmark against one blockchain
// client and prints one line per measured run.
type Runner struct {
	client   BlockchainClient
	bench    *configs.BenchConfig
	out      io.Writer
	meter    *measure.Meter
	recorder *results.Recorder

	outLock sync.Mutex
}

type RunnerOption func(*Runner)

// WithMeter sets the meter timing the runs.
func WithMeter(meter *measure.Meter) RunnerOption {
	return func(r *Runner) {
		r.meter = meter
	}
}

// WithRecorder exports every measured run to the given recorder.
func WithRecorder(recorder *results.Recorder) RunnerOption {
	return func(r *Runner) {
		r.recorder = recorder
	}
}

func NewRunner(client BlockchainClient, bench *configs.BenchConfig, out io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		client: client,
		bench:  bench,
		out:    out,
		meter:  measure.NewMeter(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes the scenarios in order. The first failed run stops the
// benchmark: its error is returned along with the results collected so far.
func (r *Runner) Run(ctx context.Context) (*results.AggregatedResults, error) {
	var scenarioResults []results.ScenarioResult

	for i := range r.bench.Scenarios {
		scenario := &r.bench.Scenarios[i]

		res, err := r.runScenario(ctx, scenario)
		scenarioResults = append(scenarioResults, res)

		if err != nil {
			aggregated := results.CalculateAggregatedResults(r.bench.Name, scenarioResults)
			return &aggregated, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	aggregated := results.CalculateAggregatedResults(r.bench.Name, scenarioResults)

	return &aggregated, nil
}

// setup prepares the chain for a scenario. Nothing done here is timed.
func (r *Runner) setup(ctx context.Context, scenario *configs.ScenarioConfig) error {
	if scenario.Fund > 0 {
		address, err := r.client.Address(configs.SignerPredicate)
		if err != nil {
			return fmt.Errorf("predicate address: %w", err)
		}

		zap.L().Debug("fund predicate",
			zap.String("scenario", scenario.Name),
			zap.String("address", address),
			zap.Uint64("amount", scenario.Fund))

		_, err = r.client.Transfer(ctx, configs.SignerAccount, address, scenario.Fund)
		if err != nil {
			return fmt.Errorf("fund predicate: %w", err)
		}
	}

	if !scenario.KeepCaches {
		r.client.ClearCaches()
	}

	return nil
}

// transferCall builds the measured call of a scenario.
func (r *Runner) transferCall(scenario *configs.ScenarioConfig) (*TransferCall, error) {
	recipient, err := r.client.Address(configs.SignerAccount)
	if err != nil {
		return nil, err
	}

	params := make([]TransferParam, scenario.Outputs)
	for i := range params {
		params[i] = TransferParam{
			Recipient: recipient,
			AssetID:   r.client.BaseAssetID(),
			Amount:    scenario.Amount,
		}
	}

	return &TransferCall{
		Signer:   scenario.SignedBy(),
		Params:   params,
		Forward:  scenario.Forward(),
		GasLimit: scenario.GasLimit,
	}, nil
}

// operation returns the unit of work timed for each run: connect, build the
// call, submit it and wait until it is final.
func (r *Runner) operation(ctx context.Context, scenario *configs.ScenarioConfig) measure.Operation[*TransferReceipt] {
	return func() (*TransferReceipt, error) {
		if timeout := scenario.RunTimeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if err := r.client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}

		call, err := r.transferCall(scenario)
		if err != nil {
			return nil, err
		}

		return r.client.ExecuteTransfer(ctx, call)
	}
}

func (r *Runner) runScenario(ctx context.Context, scenario *configs.ScenarioConfig) (results.ScenarioResult, error) {
	var lock sync.Mutex
	var durations []float64
	var failures uint

	zap.L().Info("run scenario",
		zap.String("scenario", scenario.Name),
		zap.Int("runs", scenario.RunCount()),
		zap.Int("concurrency", scenario.Parallelism()))

	if err := r.setup(ctx, scenario); err != nil {
		return results.NewScenarioResult(scenario.Name, nil, 0), err
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(scenario.Parallelism())

	for run := 0; run < scenario.RunCount(); run++ {
		run := run
		group.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			m, err := measure.MeasureWith(r.meter, r.operation(gctx, scenario))
			if err != nil {
				lock.Lock()
				failures++
				lock.Unlock()

				if r.recorder != nil {
					r.recorder.Fail(scenario.Name)
				}

				zap.L().Debug("run failed",
					zap.String("scenario", scenario.Name),
					zap.Int("run", run),
					zap.Error(err))

				return err
			}

			lock.Lock()
			durations = append(durations, m.Duration)
			lock.Unlock()

			if r.recorder != nil {
				r.recorder.Observe(scenario.Name, m.Duration)
			}

			zap.L().Debug("run complete",
				zap.String("scenario", scenario.Name),
				zap.Int("run", run),
				zap.String("tx", m.Result.TxHash))

			return r.report(scenario.Name, m.Duration)
		})
	}

	err := group.Wait()

	return results.NewScenarioResult(scenario.Name, durations, failures), err
}

// report prints the duration line of a completed run.
func (r *Runner) report(name string, duration float64) error {
	r.outLock.Lock()
	defer r.outLock.Unlock()

	_, err := fmt.Fprintf(r.out, "%s %s\n", name, strconv.FormatFloat(duration, 'f', -1, 64))
	return err
}
