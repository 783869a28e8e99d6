package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the sweep runner and
// the run ledger. It defaults to log.Printf; tests can mute or capture it
// via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
