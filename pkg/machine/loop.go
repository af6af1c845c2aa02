package machine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Debugger is the interface the simulation loop interposes between
// steps when debug mode is enabled. It is satisfied by
// pkg/debugger.Debugger; defining it here (rather than importing that
// package) keeps the loop testable with a fake, no globals involved.
type Debugger interface {
	// Ask is invoked after tracing the about-to-run instruction and
	// before it executes. It returns whether the loop should stay in
	// debug mode for the rest of the run.
	Ask(m *Machine) (bool, error)
}

// RunOptions configures Run.
type RunOptions struct {
	// Debug, if true, invokes Debugger.Ask after every traced
	// instruction until it returns false.
	Debug bool

	// Debugger is consulted when Debug is true. Run panics if Debug
	// is true and Debugger is nil.
	Debugger Debugger

	// Logger receives the per-instruction TRACE line and the HALT
	// warning. Defaults to logrus.StandardLogger() when nil.
	Logger *logrus.Logger
}

// Run drives the fetch-decode-execute loop: at each iteration it
// traces the instruction at PC, offers it to the debugger if enabled,
// then fetches it, advances PC, and executes it. PC is advanced
// *before* DecodeExecute runs (see its doc comment for why this
// matters to BRANCH/CALL/RET). Run returns nil after a normal HALT,
// the *Error that made execution fatal, or the error returned by the
// debugger's Ask.
func Run(m *Machine, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	debug := opts.Debug

	for {
		if m.PC >= m.TextSize() {
			return newError(KindSegText, m.PC, ErrSegText)
		}
		addr := m.PC
		instr := m.Text[addr]

		logger.WithFields(logrus.Fields{
			"addr":  fmt.Sprintf("0x%04x", addr),
			"instr": fmt.Sprintf("0x%08x", uint32(instr.Raw)),
		}).Trace("Executing")

		if debug {
			var err error
			debug, err = opts.Debugger.Ask(m)
			if err != nil {
				return err
			}
		}

		m.PC++
		cont, err := DecodeExecute(m, instr)
		if err != nil {
			return err
		}
		if !cont {
			logger.WithField("addr", fmt.Sprintf("0x%04x", addr)).
				Warn("HALT reached")
			return nil
		}
	}
}
