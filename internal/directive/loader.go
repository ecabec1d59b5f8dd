package directive

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/specialistvlad/microconf/internal/ctxlog"
)

// importKeyword is the only directive the loader consumes itself.
const importKeyword = "import"

// Loader flattens a micro source and its imports into a Stream.
type Loader struct {
	workDir    string
	searchPath []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithWorkDir sets the directory relative paths are resolved against.
// It defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(l *Loader) { l.workDir = dir }
}

// WithSearchPath replaces the module roots used for dotted imports. By
// default the working directory is searched, followed by MICRO_PATH.
func WithSearchPath(dirs ...string) Option {
	return func(l *Loader) { l.searchPath = append([]string(nil), dirs...) }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, o := range opts {
		o(l)
	}
	if l.workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			l.workDir = wd
		}
	}
	if abs, err := filepath.Abs(l.workDir); err == nil {
		l.workDir = abs
	}
	if l.searchPath == nil {
		l.searchPath = append([]string{l.workDir}, filepath.SplitList(os.Getenv(SearchPathEnv))...)
	}
	return l
}

// Load reads src and every source it imports. Any failure aborts the whole
// load; no partial stream is returned.
func (l *Loader) Load(ctx context.Context, src Source) (*Stream, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Directive loader started.", "source", src.String())

	stream := &Stream{}
	if err := l.load(ctx, src, nil, stream); err != nil {
		return nil, err
	}

	logger.Debug("Directive loading complete.", "sources", len(stream.Sources), "lines", len(stream.Lines))
	return stream, nil
}

// importSite identifies the import directive that led to a source, nil for the root.
type importSite struct {
	ref    string
	source string
	line   int
}

func (l *Loader) load(ctx context.Context, src Source, site *importSite, acc *Stream) error {
	var (
		id    string
		lines []string
	)

	if src.IsText() {
		id = src.String()
		lines = src.lines
		acc.Sources = append(acc.Sources, id)
	} else {
		id = src.path
		if !filepath.IsAbs(id) {
			id = filepath.Join(l.workDir, id)
		}
		id = filepath.Clean(id)
		if slices.Contains(acc.Sources, id) {
			cycleErr := &ImportCycleError{Source: id, Opened: append([]string(nil), acc.Sources...)}
			if site != nil {
				cycleErr.ImportSource, cycleErr.Line = site.source, site.line
			}
			return cycleErr
		}
		acc.Sources = append(acc.Sources, id)

		// #nosec G304 -- micro files are trusted input named by the operator.
		data, err := os.ReadFile(id)
		if err != nil {
			resErr := &ImportResolutionError{Ref: src.path, Err: err}
			if site != nil {
				resErr.Ref, resErr.Source, resErr.Line = site.ref, site.source, site.line
			}
			return resErr
		}
		lines = strings.Split(string(data), "\n")
		ctxlog.FromContext(ctx).Debug("Micro file opened.", "path", id, "physical_lines", len(lines))
	}

	for i, raw := range lines {
		num := i + 1
		text, _, _ := strings.Cut(raw, "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		split := strings.IndexFunc(text, unicode.IsSpace)
		if split == -1 {
			return &TokenizationError{Source: id, Line: num, Text: text}
		}
		keyword := text[:split]
		rest := strings.TrimSpace(text[split:])

		if strings.EqualFold(keyword, importKeyword) {
			path, err := l.resolveImport(rest)
			if err != nil {
				return &ImportResolutionError{Ref: rest, Source: id, Line: num, Err: err}
			}
			next := &importSite{ref: rest, source: id, line: num}
			if err := l.load(ctx, File(path), next, acc); err != nil {
				return err
			}
			continue
		}

		acc.Lines = append(acc.Lines, Line{Source: id, Number: num, Keyword: keyword, Text: rest})
	}
	return nil
}
