// Package simlog implements the run log spec.md §6 names
// (`<run>.log.txt`): a minimal, append-only sink that never aborts a
// run. Grounded on original_source/Log.hpp/Log.cpp, which redirects
// cout/cerr into a single ofstream opened at construction and appends a
// banner line and a boundary-protocol summary at destruction; adapted
// here into explicit Write/Close calls since Go has no destructor to
// rely on. File buffering follows stats/output.go's io.Ff-into-a-buffer,
// io.WriteFile-once-at-Close idiom.
package simlog

import (
	"bytes"
	"time"

	"github.com/cpmech/gosl/io"
)

// BuildHash is overwritten at link time (-ldflags "-X
// github.com/cpmech/filasliding/simlog.BuildHash=...") the way
// original_source/version.hpp's GIT_COMMIT is generated by the build
// system; it defaults to "unknown" for a plain `go build`.
var BuildHash = "unknown"

// Logger is the sole writer of a run's log file. It is append-only and
// every method is safe to call even after a fatal condition elsewhere
// in the run, matching spec.md §7's "never aborts" propagation policy
// for recoverable-but-reported conditions.
type Logger struct {
	dirOut, runName string
	buf             bytes.Buffer
	start           time.Time

	nDeterministicClamps int
	nReflections         int
}

// New opens a Logger for runName, writing into dirOut, and immediately
// records the build-hash banner line original_source/Log.cpp writes at
// construction.
func New(dirOut, runName string) *Logger {
	l := &Logger{dirOut: dirOut, runName: runName, start: time.Now()}
	io.Ff(&l.buf, "The build hash of the commit used to create the current program is:\n%s\n\n", BuildHash)
	return l
}

// Message appends a free-form line, the Go-side analogue of
// original_source redirecting std::cout into the log file.
func (l *Logger) Message(format string, args ...interface{}) {
	io.Ff(&l.buf, format, args...)
	if n := len(format); n == 0 || format[n-1] != '\n' {
		io.Ff(&l.buf, "\n")
	}
}

// Error appends a recoverable-but-reported diagnostic line
// (spec.md §7's InputMalformed/BoundaryClamp class of conditions),
// without aborting.
func (l *Logger) Error(format string, args ...interface{}) {
	l.Message("ERROR: "+format, args...)
}

// RecordDeterministicClamp counts one invocation of the deterministic
// boundary protocol (a deterministic drift step clamped at a movement border),
// mirroring original_source/Log::writeBoundaryProtocolAppearance's first
// counter.
func (l *Logger) RecordDeterministicClamp() { l.nDeterministicClamps++ }

// RecordReflection counts one reflection of the diffusive kick at a
// movement border, the second of
// original_source/Log::writeBoundaryProtocolAppearance's counters.
func (l *Logger) RecordReflection() { l.nReflections++ }

// NDeterministicClamps reports the running clamp count.
func (l *Logger) NDeterministicClamps() int { return l.nDeterministicClamps }

// NReflections reports the running reflection count.
func (l *Logger) NReflections() int { return l.nReflections }

// WriteBoundaryProtocolAppearance appends the clamp/reflection summary
// line original_source/Log.cpp appends per block, with the same
// singular/plural wording.
func (l *Logger) WriteBoundaryProtocolAppearance() {
	io.Ff(&l.buf, "\nThe deterministic boundary protocol was invoked %d %s\n", l.nDeterministicClamps, timesWord(l.nDeterministicClamps))
	io.Ff(&l.buf, "The stochastic boundary protocol was invoked %d %s\n", l.nReflections, timesWord(l.nReflections))
}

func timesWord(n int) string {
	if n == 1 {
		return "time."
	}
	return "times."
}

// Close appends the execution-time trailer original_source/Log's
// destructor writes, then flushes the whole buffer to
// `<run>.log.txt` in one shot.
func (l *Logger) Close() {
	io.Ff(&l.buf, "\nExecution time: %v seconds\n", time.Since(l.start).Seconds())
	io.WriteFile(io.Sf("%s/%s.log.txt", l.dirOut, l.runName), &l.buf)
}
