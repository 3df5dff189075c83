// Package report renders progress and results for the command layer. Reconciler and
// analyzer code only sees the Reporter interface.
package report

// Reporter receives progress notes and non-fatal problems from long-running operations.
type Reporter interface {
	Progress(msg string)
	Warn(msg string)
	Error(err error)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Progress(string) {}
func (Nop) Warn(string)     {}
func (Nop) Error(error)     {}
