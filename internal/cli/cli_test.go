package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/specialistvlad/microconf/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		want       *app.Config
		shouldExit bool
		exitCode   int
		errMsg     string
	}{
		{
			name: "positional micro file with defaults",
			args: []string{"service.micro"},
			want: &app.Config{MicroPath: "service.micro", LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "every option",
			args: []string{
				"-micro", "root.micro",
				"-settings", "base.hcl", "-settings", "conf.d",
				"-env-file", ".env",
				"-workdir", "/srv",
				"-c", "-no-resolve", "-watch",
				"-log-format", "JSON", "-log-level", "debug",
			},
			want: &app.Config{
				MicroPath:     "root.micro",
				WorkDir:       "/srv",
				SettingsPaths: []string{"base.hcl", "conf.d"},
				EnvFiles:      []string{".env"},
				ConfigOnly:    true,
				NoResolve:     true,
				Watch:         true,
				LogFormat:     "json",
				LogLevel:      "debug",
			},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no micro file prints usage", args: []string{}, shouldExit: true},
		{name: "unknown flag", args: []string{"-nope"}, exitCode: 2, errMsg: "flag provided but not defined: -nope"},
		{name: "bad log format", args: []string{"-log-format", "xml", "m"}, exitCode: 2, errMsg: "invalid log format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "m"}, exitCode: 2, errMsg: "invalid log level"},
		{name: "extra arguments", args: []string{"a.micro", "b.micro"}, exitCode: 2, errMsg: "unexpected arguments: b.micro"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.errMsg != "" {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "got %v", err)
				assert.Equal(t, tc.exitCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			if tc.shouldExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}
