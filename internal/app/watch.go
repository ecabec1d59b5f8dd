package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/microconf/internal/ctxlog"
)

// watchSet tracks the files whose changes trigger a recompile. Directories are
// watched rather than files so that editors replacing a file by rename are
// still noticed.
type watchSet struct {
	watcher *fsnotify.Watcher
	dirs    map[string]bool // watched directories
	files   map[string]bool // files of interest
	trees   map[string]bool // settings directories: every file inside counts
}

func newWatchSet(w *fsnotify.Watcher) *watchSet {
	return &watchSet{watcher: w, dirs: map[string]bool{}, files: map[string]bool{}, trees: map[string]bool{}}
}

func (s *watchSet) addFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	s.files[abs] = true
	return s.addDir(filepath.Dir(abs))
}

func (s *watchSet) addTree(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	s.trees[abs] = true
	return s.addDir(abs)
}

func (s *watchSet) addDir(dir string) error {
	if s.dirs[dir] {
		return nil
	}
	if err := s.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	s.dirs[dir] = true
	return nil
}

func (s *watchSet) relevant(evt fsnotify.Event) bool {
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasPrefix(filepath.Base(evt.Name), ".") {
		return false
	}
	name := filepath.Clean(evt.Name)
	if s.files[name] {
		return true
	}
	for tree := range s.trees {
		if strings.HasPrefix(name, tree+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// syncWatch adds every input of the app to the set. Paths already watched
// are skipped, so it is called again after each successful recompile.
func (a *App) syncWatch(s *watchSet) error {
	paths := append([]string{a.microFile()}, a.sources...)
	paths = append(paths, a.config.EnvFiles...)
	for _, p := range paths {
		if err := s.addFile(p); err != nil {
			return err
		}
	}
	for _, p := range a.config.SettingsPaths {
		if isDir(p) {
			if err := s.addTree(p); err != nil {
				return err
			}
			continue
		}
		if err := s.addFile(p); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	set := newWatchSet(watcher)
	if err := a.syncWatch(set); err != nil {
		return err
	}
	logger.Info("Watching for changes.", "directories", len(set.dirs), "debounce", a.debounce)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(a.debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(a.debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Debug("Watch stopped.")
			return nil
		case <-timerC:
			timerC = nil
			logger.Info("Change detected, recompiling.")
			if err := a.runOnce(ctx); err != nil {
				logger.Error("Recompilation failed.", "error", err)
				continue
			}
			if err := a.syncWatch(set); err != nil {
				logger.Warn("Failed to watch new imports.", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if set.relevant(evt) {
				logger.Debug("Input changed.", "path", evt.Name, "op", evt.Op.String())
				resetTimer()
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// microFile returns the root micro path as the loader sees it.
func (a *App) microFile() string {
	if a.config.WorkDir == "" || filepath.IsAbs(a.config.MicroPath) {
		return a.config.MicroPath
	}
	return filepath.Join(a.config.WorkDir, a.config.MicroPath)
}
