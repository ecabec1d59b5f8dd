package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/micro"
	"github.com/specialistvlad/microconf/internal/overlay"
)

// Run executes the main application logic based on the provided configuration.
// In watch mode it keeps running until ctx is cancelled and compile errors are
// logged instead of returned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	err := a.runOnce(ctx)
	if !a.config.Watch {
		return err
	}
	if err != nil {
		a.logger.Error("Compilation failed, waiting for changes.", "error", err)
	}
	return a.watch(ctx)
}

func (a *App) runOnce(ctx context.Context) error {
	res, err := a.Compile(ctx)
	if err != nil {
		return err
	}

	if a.config.ConfigOnly {
		return res.Store.Dump(a.outW)
	}

	if !a.config.NoResolve {
		var opts []overlay.Option
		if a.hosts != nil {
			opts = append(opts, overlay.WithHostResolver(a.hosts))
		}
		if err := overlay.New(opts...).Resolve(ctx, res.Graph, res.Store); err != nil {
			return fmt.Errorf("failed to resolve settings: %w", err)
		}
	}

	return a.report(res)
}

func (a *App) report(res *micro.Result) error {
	if _, err := fmt.Fprint(a.outW, micro.Describe(res.Graph)); err != nil {
		return err
	}
	for _, line := range overlay.Summary(res.Graph) {
		if _, err := fmt.Fprintln(a.outW, line); err != nil {
			return err
		}
	}
	return nil
}
