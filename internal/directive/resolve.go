package directive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SearchPathEnv names the environment variable holding extra module roots
// for dotted imports, in the platform's list format.
const SearchPathEnv = "MICRO_PATH"

// microExt is the pseudo-extension a dotted reference may end with.
const microExt = "micro"

var errNoModuleRoot = errors.New("no module root found")

// isDotted reports whether ref is a dotted module reference such as a.b.c.
func isDotted(ref string) bool {
	return strings.Contains(ref, ".") && !strings.ContainsAny(ref, `/`+string(filepath.Separator))
}

// resolveImport maps an import reference to a file path:
//
//   - a.b.c resolves a's module root on the search path and joins b/c under it;
//     a trailing .micro segment is kept as a file extension.
//   - any other relative reference is joined to the working directory.
//   - an absolute reference is used verbatim.
func (l *Loader) resolveImport(ref string) (string, error) {
	if isDotted(ref) {
		parts := strings.Split(ref, ".")
		ext := ""
		if len(parts) > 1 && parts[len(parts)-1] == microExt {
			parts = parts[:len(parts)-1]
			ext = "." + microExt
		}
		for _, part := range parts {
			if part == "" {
				return "", fmt.Errorf("malformed module reference %q", ref)
			}
		}
		root, err := l.findModuleRoot(parts[0], ext)
		if err != nil {
			return "", err
		}
		return filepath.Join(append([]string{root}, parts[1:]...)...) + ext, nil
	}
	if !filepath.IsAbs(ref) {
		return filepath.Join(l.workDir, ref), nil
	}
	return ref, nil
}

// findModuleRoot returns the first <dir>/<name> on the search path that is a
// directory. A bare `name.micro` reference also accepts <dir>/name.micro.
func (l *Loader) findModuleRoot(name, ext string) (string, error) {
	for _, dir := range l.searchPath {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		if ext != "" {
			if info, err := os.Stat(candidate + ext); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w for %q in %s", errNoModuleRoot, name, strings.Join(l.searchPath, string(filepath.ListSeparator)))
}
