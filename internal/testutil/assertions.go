package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogContains checks that every fragment appears somewhere in the
// captured log output.
func AssertLogContains(t *testing.T, logs *SafeBuffer, fragments ...string) {
	t.Helper()

	out := logs.String()
	for _, fragment := range fragments {
		require.True(t,
			strings.Contains(out, fragment),
			"expected log output to contain %q, got:\n%s", fragment, out,
		)
	}
}
