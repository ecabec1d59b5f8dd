package directive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/microconf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywords returns "source-basename:line:keyword" triples for compact assertions.
func keywords(s *Stream) []string {
	out := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		out = append(out, fmt.Sprintf("%s:%d:%s", filepath.Base(l.Source), l.Number, l.Keyword))
	}
	return out
}

func TestLoad_TextSource(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	l := NewLoader(WithWorkDir(t.TempDir()))

	s, err := l.Load(ctx, Text(
		"SERVER web 8080  # trailing comment",
		"",
		"   # only a comment",
		"route   /foo/bar$",
		"GET a.b",
	))
	require.NoError(t, err)
	require.Len(t, s.Lines, 3)

	assert.Equal(t, Line{Source: MemorySource, Number: 1, Keyword: "SERVER", Text: "web 8080"}, s.Lines[0])
	assert.Equal(t, Line{Source: MemorySource, Number: 4, Keyword: "route", Text: "/foo/bar$"}, s.Lines[1])
	assert.Equal(t, Line{Source: MemorySource, Number: 5, Keyword: "GET", Text: "a.b"}, s.Lines[2])
	assert.Equal(t, []string{MemorySource}, s.Sources)
}

func TestLoad_TokenizationError(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	l := NewLoader(WithWorkDir(t.TempDir()))

	s, err := l.Load(ctx, NamedText("inline", "server web 8080", "route"))
	require.Error(t, err)
	assert.Nil(t, s, "no partial stream on failure")

	var tokErr *TokenizationError
	require.True(t, errors.As(err, &tokErr))
	assert.Equal(t, "inline", tokErr.Source)
	assert.Equal(t, 2, tokErr.Line)
}

func TestLoad_ImportClosureOrdering(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.micro": "server a 1\nimport b.micro\nconfig a.after\n",
		"b.micro": "config b.before\nimport c.micro\nconfig b.after\n",
		"c.micro": "config c.one\nconfig c.two\n",
	})
	// b.micro and c.micro are dotted refs; the work dir is on the default search path.
	ctx, _ := testutil.NewContext(t)
	l := NewLoader(WithWorkDir(dir))

	s, err := l.Load(ctx, File("a.micro"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a.micro:1:server",
		"b.micro:1:config",
		"c.micro:1:config",
		"c.micro:2:config",
		"b.micro:3:config",
		"a.micro:3:config",
	}, keywords(s))
	assert.Equal(t, []string{
		filepath.Join(dir, "a.micro"),
		filepath.Join(dir, "b.micro"),
		filepath.Join(dir, "c.micro"),
	}, s.Sources)
}

func TestLoad_ImportFromTextSource(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"sub/common.txt": "connection api http://localhost\n",
	})
	ctx, _ := testutil.NewContext(t)
	l := NewLoader(WithWorkDir(dir))

	s, err := l.Load(ctx, Text("import sub/common.txt", "header X-Key default=1"))
	require.NoError(t, err)
	require.Len(t, s.Lines, 2)
	assert.Equal(t, filepath.Join(dir, "sub", "common.txt"), s.Lines[0].Source)
	assert.Equal(t, 1, s.Lines[0].Number)
	assert.Equal(t, MemorySource, s.Lines[1].Source)
	assert.Equal(t, 2, s.Lines[1].Number)
}

func TestLoad_ImportCycle(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.micro": "config a\nIMPORT b.micro\n",
		"b.micro": "config b\nimport a.micro\n",
	})
	ctx, _ := testutil.NewContext(t)
	l := NewLoader(WithWorkDir(dir))

	s, err := l.Load(ctx, File(filepath.Join(dir, "a.micro")))
	require.Error(t, err)
	assert.Nil(t, s)

	var cycleErr *ImportCycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, filepath.Join(dir, "a.micro"), cycleErr.Source)
	assert.Equal(t, filepath.Join(dir, "b.micro"), cycleErr.ImportSource)
	assert.Equal(t, 2, cycleErr.Line)
	assert.Contains(t, err.Error(), "cannot be recursively imported")
	assert.Contains(t, err.Error(), fmt.Sprintf("file=%s, line=2", filepath.Join(dir, "b.micro")))
}

func TestLoad_DiamondImportIsReportedAsCycle(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.micro": "import b.micro\nimport c.micro\n",
		"b.micro": "import d.micro\n",
		"c.micro": "config c\nimport d.micro\n",
		"d.micro": "config d\n",
	})
	ctx, _ := testutil.NewContext(t)

	_, err := NewLoader(WithWorkDir(dir)).Load(ctx, File("a.micro"))
	var cycleErr *ImportCycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, filepath.Join(dir, "d.micro"), cycleErr.Source)
	assert.Equal(t, filepath.Join(dir, "c.micro"), cycleErr.ImportSource)
	assert.Equal(t, 2, cycleErr.Line)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.micro"),
		filepath.Join(dir, "b.micro"),
		filepath.Join(dir, "d.micro"),
		filepath.Join(dir, "c.micro"),
	}, cycleErr.Opened)
}

func TestLoad_SelfImport(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"self.micro": "import self.micro\n",
	})
	ctx, _ := testutil.NewContext(t)

	_, err := NewLoader(WithWorkDir(dir)).Load(ctx, File("self.micro"))
	var cycleErr *ImportCycleError
	require.True(t, errors.As(err, &cycleErr))
}

func TestLoad_MissingImport(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"main.micro": "config a\nimport ./missing.micro\n",
	})
	ctx, _ := testutil.NewContext(t)

	_, err := NewLoader(WithWorkDir(dir)).Load(ctx, File("main.micro"))
	var resErr *ImportResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "./missing.micro", resErr.Ref)
	assert.Equal(t, filepath.Join(dir, "main.micro"), resErr.Source)
	assert.Equal(t, 2, resErr.Line)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_MissingRoot(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	_, err := NewLoader(WithWorkDir(t.TempDir())).Load(ctx, File("nope.micro"))

	var resErr *ImportResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.Empty(t, resErr.Source)
}
