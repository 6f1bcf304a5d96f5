package reader

import (
	"fmt"
	"log"
	"sync"

	"gosml/sml"
)

// Diagnostics is an optional, injectable logging sink for programs
// embedding a Reader. gosml itself never logs (non-fatal notices are
// returned from ReadNext, not printed), but a caller that wants
// console visibility into discarded bytes, tolerated padding, or
// aborted transmissions can wire one up the same way a meter-polling
// program would wire a hierarchical logger into its connection loop.
//
// A mutex-guarded root and a tree of prefixed sub-loggers,
// generalised from "print to stdlib log" into an interface so a
// caller can substitute their own sink.
type Diagnostics interface {
	NewSubDiagnostics(prefix string) Diagnostics
	Printf(format string, v ...any)
}

// NewDiagnostics returns a Diagnostics backed by the standard library
// logger, guarded by a mutex so concurrent meter instances (one
// Reader each) can log through sub-diagnostics of one shared root
// without interleaving output.
func NewDiagnostics() Diagnostics {
	return &rootDiagnostics{lock: &sync.Mutex{}}
}

type rootDiagnostics struct {
	lock *sync.Mutex
}

func (r *rootDiagnostics) NewSubDiagnostics(prefix string) Diagnostics {
	return &subDiagnostics{parent: r, prefix: prefix}
}

func (r *rootDiagnostics) Printf(format string, v ...any) {
	r.lock.Lock()
	defer r.lock.Unlock()

	log.Printf(format, v...)
}

type subDiagnostics struct {
	parent Diagnostics
	prefix string
}

func (s *subDiagnostics) NewSubDiagnostics(prefix string) Diagnostics {
	return &subDiagnostics{parent: s, prefix: prefix}
}

func (s *subDiagnostics) Printf(format string, v ...any) {
	s.parent.Printf("%s: %s", s.prefix, fmt.Sprintf(format, v...))
}

// LogOutcome prints a human-readable line for o's kind, nesting a
// formatted SML dump under the notice when o carries a Parse-mode
// File. Callers using Transport mode, or who don't want this shape of
// logging, are free to inspect Outcome themselves instead.
func LogOutcome(d Diagnostics, o Outcome) {
	switch o.Kind {
	case Message:
		if o.File != nil {
			d.Printf("received SML file:\n%s", sml.FormatIndented(o.File, "  "))
			return
		}

		d.Printf("received frame (%d bytes), tolerant_padding=%v", len(o.Payload), o.TolerantPadding)

	case DiscardedBytes:
		d.Printf("discarded %d junk bytes while resyncing", o.DiscardedCount)

	case Aborted:
		d.Printf("transmission aborted, code=0x%02x", o.AbortCode)

	case TransportError:
		d.Printf("transport error: %v", o.Err)

	case ParseError:
		d.Printf("parse error: %v", o.Err)
	}
}
