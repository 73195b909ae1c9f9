package execute

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ytproxy/internal/blocking"
	"ytproxy/internal/domain/command"
	"ytproxy/internal/domain/errconsts"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"
)

// DefaultStrategies returns the strategy list in priority order.
//
// Stored credentials are tried first, guest client spoofs never send them.
func DefaultStrategies() []models.Strategy {
	return []models.Strategy{
		{Name: "Default"},
		{
			Name:                "Guest (Android)",
			ExtraArgs:           models.ArgList{}.Pair(command.ExtractorArg, command.PlayerClientAndroid),
			ExcludesCredentials: true,
		},
		{
			Name:                "Guest (iOS)",
			ExtraArgs:           models.ArgList{}.Pair(command.ExtractorArg, command.PlayerClientIOS),
			ExcludesCredentials: true,
		},
		{
			Name:                "Guest (TV Embedded)",
			ExtraArgs:           models.ArgList{}.Pair(command.ExtractorArg, command.PlayerClientTVEmbedded),
			ExcludesCredentials: true,
		},
	}
}

// StrategyRunner tries each strategy in order until one succeeds.
type StrategyRunner struct {
	exec       Executor
	strategies []models.Strategy
	blocks     *blocking.Registry
}

// NewStrategyRunner returns a runner. A nil strategies slice means DefaultStrategies.
func NewStrategyRunner(e Executor, strategies []models.Strategy) *StrategyRunner {
	if strategies == nil {
		strategies = DefaultStrategies()
	}
	return &StrategyRunner{exec: e, strategies: strategies}
}

// WithBlockRegistry records bot detections per strategy in reg.
//
// Blocked strategies are still tried, in order.
func (r *StrategyRunner) WithBlockRegistry(reg *blocking.Registry) *StrategyRunner {
	r.blocks = reg
	return r
}

// EffectiveArgs merges base with the strategy's extras, dropping credentials where required.
func EffectiveArgs(base models.ArgList, s models.Strategy) models.ArgList {
	args := base.Concat(s.ExtraArgs)
	if s.ExcludesCredentials {
		args = args.Without(command.CookiePath)
	}
	return args
}

// Run executes the strategies sequentially and returns stdout of the first success.
//
// Every started process is waited on before the next one starts.
func (r *StrategyRunner) Run(ctx context.Context, base models.ArgList, url string) ([]byte, error) {
	failed := &AllStrategiesFailedError{}

	for _, s := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		argv := append(EffectiveArgs(base, s).Strings(), url)
		logging.D(2, "Trying strategy %q for URL %q", s.Name, url)
		if r.blocks != nil {
			if blocked, at, _ := r.blocks.IsBlocked(url, s.Name); blocked {
				logging.D(1, "Strategy %q hit bot detection %v ago", s.Name, time.Since(at).Round(time.Second))
			}
		}

		res, err := r.exec.Run(ctx, argv)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			failed.Attempts = append(failed.Attempts, StrategyAttempt{Strategy: s.Name, Err: err})
			logging.W("Strategy %q could not run for URL %q: %v", s.Name, url, err)
			continue
		}

		if res.ExitCode == 0 {
			if r.blocks != nil {
				r.blocks.Clear(url, s.Name)
			}
			if len(failed.Attempts) > 0 {
				logging.I("Strategy %q succeeded for URL %q after %d failure(s)", s.Name, url, len(failed.Attempts))
			}
			return res.Stdout, nil
		}

		attemptErr := invocationError(res)
		failed.Attempts = append(failed.Attempts, StrategyAttempt{Strategy: s.Name, Err: attemptErr})
		if r.blocks != nil && blocking.IsBotDetection(attemptErr) {
			r.blocks.Record(url, s.Name)
		}
		logging.W("Strategy %q failed for URL %q: %v", s.Name, url, attemptErr)
	}

	return nil, failed
}

// invocationError prefers stderr text over the bare exit code.
func invocationError(res *models.InvocationResult) error {
	if msg := strings.TrimSpace(string(res.Stderr)); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf(errconsts.YTDLPExitCode, res.ExitCode)
}
