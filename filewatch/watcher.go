package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/aguxez/bmrcalc/metrics"
	"github.com/aguxez/bmrcalc/models"
)

// settleDelay is how long a file must go without events before it is read.
const settleDelay = 500 * time.Millisecond

// FileWatcher computes results for measurement CSVs dropped into the inbox
type FileWatcher struct {
	calc     Calculator
	stateMgr *models.StateManager
	watcher  *fsnotify.Watcher
	inbox    string
	outbox   string
	settle   time.Duration
	log      *logrus.Entry
}

func NewFileWatcher(calc Calculator, inbox, outbox string, sm *models.StateManager) (*FileWatcher, error) {
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(inbox); err != nil {
		w.Close()
		return nil, err
	}

	sm.SetEnabled(true)
	return &FileWatcher{
		calc:     calc,
		stateMgr: sm,
		watcher:  w,
		inbox:    inbox,
		outbox:   outbox,
		settle:   settleDelay,
		log:      logrus.WithField("component", "filewatch"),
	}, nil
}

// ProcessExisting handles files already present in the inbox.
func (fw *FileWatcher) ProcessExisting() error {
	entries, err := os.ReadDir(fw.inbox)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fw.HandleFileChange(filepath.Join(fw.inbox, e.Name()))
	}
	return nil
}

// Watch blocks until ctx is done or the underlying watcher is closed. A file
// is processed once it has gone quiet for the settle delay, so a CSV written
// in several chunks yields a single run.
func (fw *FileWatcher) Watch(ctx context.Context) {
	defer fw.watcher.Close()

	pending := make(map[string]*time.Timer)
	settled := make(chan string)
	stopped := make(chan struct{})
	defer func() {
		close(stopped)
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !isInput(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if t, ok := pending[event.Name]; ok {
					t.Stop()
					delete(pending, event.Name)
				}
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				fw.log.WithField("file", event.Name).Debug("inbox changed")
				if t, ok := pending[event.Name]; ok {
					t.Reset(fw.settle)
					continue
				}
				name := event.Name
				pending[name] = time.AfterFunc(fw.settle, func() {
					select {
					case settled <- name:
					case <-stopped:
					}
				})
			}
		case name := <-settled:
			delete(pending, name)
			fw.HandleFileChange(name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.WithError(err).Error("watch error")
		}
	}
}

func (fw *FileWatcher) HandleFileChange(path string) {
	if !isInput(path) {
		return
	}

	out := ResultPath(path, fw.outbox)
	run, err := ProcessFile(fw.calc, path, out)
	if err != nil {
		run.Err = err.Error()
		metrics.BatchFilesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		fw.log.WithError(err).WithField("file", path).Error("batch file failed")
	} else {
		metrics.BatchFilesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		fw.log.WithFields(logrus.Fields{
			"file":   path,
			"output": out,
			"rows":   run.Rows,
			"failed": run.Failed,
		}).Info("batch file processed")
	}
	fw.stateMgr.RecordRun(run)
}

func isInput(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv") && !isResultFile(path)
}
