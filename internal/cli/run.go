package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stepline/stepline/internal/config"
	"github.com/stepline/stepline/internal/domain"
	"github.com/stepline/stepline/internal/engine"
	steplineerrors "github.com/stepline/stepline/internal/errors"
	"github.com/stepline/stepline/internal/report"
	"github.com/stepline/stepline/internal/script"
)

// runFlags holds flags specific to the run command.
type runFlags struct {
	parallel  int
	loopLimit int
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command, globals *GlobalFlags) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <script>...",
		Short: "Run one or more test scripts",
		Long: `Run executes each named script file and reports its result.

Multiple scripts run concurrently, bounded by --parallel. The command
exits non-zero when any script fails. Each script's while loops fall back
to the configured default iteration limit when they declare none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, globals, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.parallel, "parallel", "p", 0, "number of scripts to run concurrently (default from config)")
	cmd.Flags().IntVar(&flags.loopLimit, "loop-limit", 0, "default iteration limit for while loops without one (default from config)")

	root.AddCommand(cmd)
}

func runScripts(cmd *cobra.Command, globals *GlobalFlags, flags *runFlags, paths []string) error {
	logger := GetLogger()

	cfg, err := config.LoadWithOverrides(&config.Overrides{
		DefaultLoopLimit: flags.loopLimit,
		Parallel:         flags.parallel,
		OutputFormat:     globals.Output,
	})
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return steplineerrors.Wrap(err, "failed to determine working directory")
	}

	scripts, err := script.NewLoader(cwd).LoadAll(paths)
	if err != nil {
		return err
	}

	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithDefaultLoopLimit(cfg.Loop.DefaultLimit),
	)

	results := make([]*report.Run, len(scripts))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Run.Parallel)
	for i, s := range scripts {
		g.Go(func() error {
			// A failed script is reported through its result, not through
			// the group: later scripts still run.
			result, runErr := eng.Run(ctx, s)
			if runErr != nil {
				logger.Debug().Str("script", s.Name).Err(runErr).Msg("script failed")
			}
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return renderResults(cmd, results, cfg.Output.Format)
}

// renderResults prints each run result in script order and reports overall
// failure through ErrRunFailed.
func renderResults(cmd *cobra.Command, results []*report.Run, format string) error {
	failed := 0
	out := cmd.OutOrStdout()
	for _, result := range results {
		rendered, err := result.Render(format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
		if result.Status == domain.RunStatusFailed {
			failed++
		}
	}

	if failed > 0 {
		return steplineerrors.Wrapf(steplineerrors.ErrRunFailed,
			"%d of %d scripts failed", failed, len(results))
	}
	return nil
}
