// Package passlog is the thin commonlog wrapper every pass logs
// through, generalizing the single commonlog.Configure call the
// teacher's LSP entry point makes (cmd/kanso-lsp/main.go) into a
// per-pass named-logger convention: internal/cse and
// internal/workerpool each get their own named Get() logger instead of
// writing straight to the package default.
package passlog

import (
	"sync"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple" // registers the "simple" backend Configure selects
)

var configureOnce sync.Once

// Configure sets the process-wide log verbosity (0 disables debug
// logging, higher numbers are noisier) exactly once; later calls are
// no-ops so that pass construction order never matters.
func Configure(verbosity int) {
	configureOnce.Do(func() {
		commonlog.Configure(verbosity, nil)
	})
}

// Get returns the named logger for a pass or component, e.g.
// passlog.Get("inliner") or passlog.Get("cse"). Loggers are cheap and
// safe to fetch per call; commonlog caches them by name internally.
func Get(name string) commonlog.Logger {
	return commonlog.GetLogger(name)
}
