package app

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/directive"
	"github.com/specialistvlad/microconf/internal/fsutil"
	"github.com/specialistvlad/microconf/internal/micro"
	"github.com/specialistvlad/microconf/internal/settings"
)

// Compile parses the micro file, then populates its store from the settings
// files and finally from environment bindings.
func (a *App) Compile(ctx context.Context) (*micro.Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling micro file.", "path", a.config.MicroPath)

	var loaderOpts []directive.Option
	if a.config.WorkDir != "" {
		loaderOpts = append(loaderOpts, directive.WithWorkDir(a.config.WorkDir))
	}
	res, err := micro.Parse(ctx, directive.File(a.config.MicroPath),
		micro.WithLoader(directive.NewLoader(loaderOpts...)))
	if err != nil {
		return nil, fmt.Errorf("failed to compile micro file: %w", err)
	}
	a.sources = res.Sources

	files, err := fsutil.ExpandPaths(a.config.SettingsPaths, settings.Extensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to find settings files: %w", err)
	}
	for _, f := range files {
		if err := res.Store.LoadFile(ctx, f); err != nil {
			return nil, fmt.Errorf("failed to apply settings: %w", err)
		}
	}

	lookup, err := a.envLookup()
	if err != nil {
		return nil, err
	}
	applied, err := res.Store.ApplyEnv(lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	logger.Info("Micro file compiled.",
		"sources", len(res.Sources),
		"servers", len(res.Graph.Servers),
		"connections", len(res.Graph.Connections),
		"settings_files", len(files),
		"env_overrides", applied,
	)
	return res, nil
}

// envLookup consults the process environment first, then the dotenv files.
// Later dotenv files override earlier ones.
func (a *App) envLookup() (func(string) (string, bool), error) {
	fileEnv := map[string]string{}
	if len(a.config.EnvFiles) > 0 {
		env, err := godotenv.Read(a.config.EnvFiles...)
		if err != nil {
			return nil, fmt.Errorf("failed to read env files: %w", err)
		}
		fileEnv = env
	}
	return func(name string) (string, bool) {
		if v, ok := a.lookupEnv(name); ok {
			return v, true
		}
		v, ok := fileEnv[name]
		return v, ok
	}, nil
}
