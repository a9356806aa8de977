package industry

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"resumescore/internal/errors"
)

// LoadLexicon reads an industry keyword table from a YAML file:
//
//	industries:
//	  - name: technology
//	    keywords: [software, developer, ...]
func LoadLexicon(path string) ([]Entry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var lexicon struct {
		Industries []Entry `mapstructure:"industries"`
	}
	if err := v.Unmarshal(&lexicon); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}
	if len(lexicon.Industries) == 0 {
		return nil, fmt.Errorf("lexicon file defines no industries")
	}

	for i, entry := range lexicon.Industries {
		if entry.Name == "" {
			return nil, fmt.Errorf("lexicon industry %d has no name", i)
		}
		for j, kw := range entry.Keywords {
			lexicon.Industries[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}

	return lexicon.Industries, nil
}

// SetTable replaces the detector's industry table
func (d *Detector) SetTable(table []Entry) {
	d.mu.Lock()
	d.table = table
	d.mu.Unlock()
}

// LoadLexiconFile loads a lexicon file into the detector
func (d *Detector) LoadLexiconFile(path string) error {
	table, err := LoadLexicon(path)
	if err != nil {
		return err
	}
	d.SetTable(table)
	if d.logger != nil {
		d.logger.Info("Industry lexicon loaded", "file", path, "industries", len(table))
	}
	return nil
}

// LexiconWatcher reloads the detector's table when the lexicon file changes
type LexiconWatcher struct {
	mu sync.Mutex

	path     string
	detector *Detector

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	logger  *errors.Logger
	running bool
}

// NewLexiconWatcher creates a watcher for the given lexicon file
func NewLexiconWatcher(path string, detector *Detector, logger *errors.Logger) *LexiconWatcher {
	return &LexiconWatcher{
		path:          path,
		detector:      detector,
		debounceDelay: time.Second,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		logger:        logger,
	}
}

// Start begins watching the lexicon file
func (lw *LexiconWatcher) Start() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	lw.fsWatcher = watcher

	if err := watcher.Add(lw.path); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && lw.logger != nil {
			lw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return fmt.Errorf("failed to watch lexicon file %s: %w", lw.path, err)
	}
	// Also watch the directory to catch atomic writes (rename operations)
	if err := watcher.Add(filepath.Dir(lw.path)); err != nil && lw.logger != nil {
		lw.logger.Warn("Failed to watch lexicon directory", "error", err)
	}

	lw.running = true
	go lw.watchLoop()

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher started", "file", lw.path)
	}
	return nil
}

// Stop stops the watcher
func (lw *LexiconWatcher) Stop() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if !lw.running {
		return nil
	}

	close(lw.stopChan)
	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}
	if err := lw.fsWatcher.Close(); err != nil {
		if lw.logger != nil {
			lw.logger.LogError(err, "Failed to close file system watcher")
		}
		return err
	}

	lw.running = false
	return nil
}

func (lw *LexiconWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-lw.fsWatcher.Events:
			if !ok {
				return
			}
			if lw.shouldProcessEvent(event) {
				lw.scheduleReload()
			}

		case err, ok := <-lw.fsWatcher.Errors:
			if !ok {
				return
			}
			if lw.logger != nil {
				lw.logger.LogError(err, "Lexicon watcher error")
			}

		case <-lw.reloadChan:
			if err := lw.detector.LoadLexiconFile(lw.path); err != nil && lw.logger != nil {
				// Keep the previous table on a bad reload
				lw.logger.LogError(err, "Lexicon reload failed, keeping current table")
			}

		case <-lw.stopChan:
			return
		}
	}
}

func (lw *LexiconWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != lw.path && filepath.Base(event.Name) != filepath.Base(lw.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (lw *LexiconWatcher) scheduleReload() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}
	lw.debounceTimer = time.AfterFunc(lw.debounceDelay, func() {
		select {
		case lw.reloadChan <- struct{}{}:
		default:
		}
	})
}
