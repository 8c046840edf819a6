package app

import (
	"os"
	"path/filepath"
	"time"

	"gridview/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// FileWatchEvent carries file system change notifications to the main
// event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

func (a *App) setupWatcher(screen tcell.Screen) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		return
	}
	a.watcher = watcher

	// Watch the directory: editors and exporters usually replace the
	// file rather than writing it in place, which drops a plain file
	// watch.
	watcher.Add(filepath.Dir(a.path))

	go func() {
		// Debounce: collect events and send after a quiet period
		debounce := time.NewTimer(100 * time.Millisecond)
		debounce.Stop()
		var pending []fsnotify.Event

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != a.path {
					continue
				}
				pending = append(pending, event)
				debounce.Reset(100 * time.Millisecond)

			case <-debounce.C:
				for _, event := range pending {
					ev := &FileWatchEvent{Path: event.Name, Op: event.Op}
					ev.SetEventNow()
					screen.PostEvent(ev)
				}
				pending = nil

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (a *App) handleFileWatchEvent(ev *FileWatchEvent) {
	if ev.Path != a.path {
		return
	}

	switch {
	case ev.Op&fsnotify.Remove != 0:
		a.setTemporaryError("Warning: " + filepath.Base(ev.Path) + " was deleted externally")

	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		info, err := os.Stat(ev.Path)
		if err != nil {
			return
		}
		// Allow a grace period after our own save
		if !a.lastSave.IsZero() && info.ModTime().Sub(a.lastSave) <= time.Second {
			return
		}
		if a.dirty {
			d := ui.NewReloadConfirmDialog(filepath.Base(ev.Path))
			d.OnConfirm = func(answer rune) {
				a.dialog = nil
				if answer == 'y' {
					a.reloadFromDisk()
				}
			}
			a.dialog = d
		} else {
			a.reloadFromDisk()
			a.setTemporaryMessage("↻ " + filepath.Base(ev.Path) + " (reloaded)")
		}
	}
}
