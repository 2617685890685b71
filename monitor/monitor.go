package monitor

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/labfab/lasercam"
)

// Report is one parsed diagnostic line
type Report struct {
	Board   string         `json:"board"`
	Session string         `json:"session"`
	Kind    string         `json:"kind"`
	Line    string         `json:"line"`
	Event   lasercam.Event `json:"event"`
	Time    time.Time      `json:"time"`
}

// Reporter receives every parsed event. Errors are logged by the Monitor and never stop it
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// Monitor follows the diagnostic output of one board
type Monitor struct {
	board     string
	session   string
	reporters []Reporter
	verbose   bool

	mtx    sync.Mutex
	counts map[lasercam.EventKind]int
	last   *Report
}

// New creates a Monitor with a fresh session ID
func New(board string, verbose bool, reporters ...Reporter) *Monitor {
	return &Monitor{
		board:     board,
		session:   uuid.NewString(),
		reporters: reporters,
		verbose:   verbose,
		counts:    map[lasercam.EventKind]int{},
	}
}

// Session identifies this run of the Monitor in reports
func (m *Monitor) Session() string {
	return m.session
}

// Run reads lines from r until EOF or the context is done
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimRight(scanner.Text(), "\r")

		e, ok := lasercam.ParseEvent(line)
		if !ok {
			if m.verbose && strings.Trim(line, ". ") != "" {
				log.Printf("[%s] %s", m.board, line)
			}
			continue
		}

		report := Report{
			Board:   m.board,
			Session: m.session,
			Kind:    e.Kind.String(),
			Line:    line,
			Event:   e,
			Time:    time.Now(),
		}
		m.record(report)

		log.Printf("[%s] %s: %s", m.board, report.Kind, line)

		for _, rep := range m.reporters {
			err := rep.Report(ctx, report)
			if err != nil {
				log.Printf("error reporting %s event: %v", report.Kind, err)
			}
		}
	}

	// a port closed on shutdown fails the scan; report the cancellation instead
	if err := ctx.Err(); err != nil {
		return err
	}
	return scanner.Err()
}

func (m *Monitor) record(r Report) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.counts[r.Event.Kind]++
	m.last = &r
}

// Count returns how many events of kind were seen
func (m *Monitor) Count(kind lasercam.EventKind) int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.counts[kind]
}

// Last returns the most recent report
func (m *Monitor) Last() (Report, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.last == nil {
		return Report{}, false
	}
	return *m.last, true
}
