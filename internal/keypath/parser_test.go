// internal/keypath/parser_test.go
package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    []string
		expectError bool
	}{
		{name: "single segment", input: "foo", expected: []string{"foo"}},
		{name: "server key", input: "server.web.ssl.keyfile", expected: []string{"server", "web", "ssl", "keyfile"}},
		{name: "header binding with dash", input: "connection.api.header.X-Api-Key", expected: []string{"connection", "api", "header", "X-Api-Key"}},
		{name: "numeric segment", input: "a.b.c.2", expected: []string{"a", "b", "c", "2"}},
		{name: "empty", input: "", expectError: true},
		{name: "empty segment", input: "a..b", expectError: true},
		{name: "trailing dot", input: "a.b.", expectError: true},
		{name: "slash in segment", input: "a.b/c", expectError: true},
		{name: "lone dash", input: "a.-", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.input)
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p.Segments)
			assert.Equal(t, tc.input, p.String())
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
	assert.NotPanics(t, func() { MustParse("a.b") })
}

func TestPath_ChildAndPrefix(t *testing.T) {
	base := New("connection", "api")
	child := base.Child("resource", "users", "is_debug")

	assert.Equal(t, "connection.api.resource.users.is_debug", child.String())
	assert.True(t, child.HasPrefix(base))
	assert.False(t, base.HasPrefix(child))
	assert.Equal(t, 2, base.Len(), "Child must not mutate the receiver")
	assert.True(t, child.Equal(MustParse("connection.api.resource.users.is_debug")))
	assert.Equal(t, "a.b", Join("a", "b"))
}
