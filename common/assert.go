package common

import (
	"runtime"

	"github.com/devlights/gomy/output"
	deadlock "github.com/sasha-s/go-deadlock"
)

// init wires DumpGoroutineStacks to every deadlock.Mutex/RWMutex in the
// process: the same stack-dump-before-panic behavior the teacher's
// SH_Mutex gave a caller on a suspected deadlock, now driven by
// go-deadlock's own detector instead of a hand-rolled timeout.
func init() {
	deadlock.Opts.OnPotentialDeadlock = func() {
		DumpGoroutineStacks()
		panic("potential deadlock detected")
	}
}

// Assert panics with msg when condition is false. Used for invariants
// that a correct caller can never violate (a page table entry pointing
// at a frame also on the free list, a frame array index out of range) —
// not for conditions a client of the buffer pool can trigger, which are
// surfaced as booleans instead.
func Assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// DumpGoroutineStacks prints every goroutine's stack trace. Called by
// go-deadlock when it suspects a deadlock, so the process explains
// itself before it panics.
//
// REFERENCES
//   - https://pkg.go.dev/runtime#Stack
//   - https://stackoverflow.com/questions/19094099/how-to-dump-goroutine-stacktraces
func DumpGoroutineStacks() {
	getStack := func() []byte {
		buf := make([]byte, 1024)
		for {
			n := runtime.Stack(buf, true)
			if n < len(buf) {
				return buf[:n]
			}
			buf = make([]byte, 2*len(buf))
		}
	}

	output.Stdoutl("=== stack-all   ", string(getStack()))
}
