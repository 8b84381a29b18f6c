package audit

import (
	"strings"
	"sync"

	"github.com/psaab/vyconf/pkg/configtree"
)

// Op is one recorded mutation.
type Op struct {
	Name string
	Path []string
	Args []string
}

// Recorder captures mutations in memory, for reviewing what a migration
// script or an interactive session actually did.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hook returns the mutation hook feeding this recorder.
func (r *Recorder) Hook() configtree.MutationFunc {
	return func(op string, path []string, args ...string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.ops = append(r.ops, Op{
			Name: op,
			Path: append([]string(nil), path...),
			Args: append([]string(nil), args...),
		})
	}
}

// Ops returns a copy of the recorded operations in order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Len returns the number of recorded operations.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// Script renders the recorded operations as one command per line, values
// single-quoted.
func (r *Recorder) Script() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	for _, op := range r.ops {
		b.WriteString(op.Name)
		for _, p := range op.Path {
			b.WriteByte(' ')
			b.WriteString(p)
		}
		for _, a := range op.Args {
			b.WriteString(" '")
			b.WriteString(a)
			b.WriteByte('\'')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
