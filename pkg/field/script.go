package field

import (
	"fmt"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// ScriptTimeout is the hard limit for a single point evaluation.
const ScriptTimeout = 5 * time.Second

// Script is a Provider whose value at (x, y) is the result of a
// sandboxed Lisp expression: a fresh interpreter per call, run on its
// own goroutine under ScriptTimeout, with arithmetic builtins bound to
// the query point.
type Script struct {
	mu         sync.Mutex
	generation uint64
	source     string
}

// NewScript validates source by evaluating it once at the origin, so
// a syntax error surfaces at construction time rather than on the
// first mesh point sampled.
func NewScript(source string) (*Script, error) {
	s := &Script{source: source}
	if _, err := s.Eval(0, 0); err != nil {
		return nil, fmt.Errorf("field: script: %w", err)
	}
	return s, nil
}

type scriptResult struct {
	val float64
	err error
}

// Eval implements Provider: it runs the script in a fresh sandboxed
// environment with x and y bound to the query point, under a timeout.
func (s *Script) Eval(x, y float64) (float64, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	ch := make(chan scriptResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- scriptResult{err: fmt.Errorf("panic evaluating script: %v", r)}
			}
		}()
		v, err := s.evaluate(x, y)
		ch <- scriptResult{val: v, err: err}
	}()

	return s.waitWithTimeout(ch, gen)
}

func (s *Script) waitWithTimeout(ch <-chan scriptResult, gen uint64) (float64, error) {
	timer := time.NewTimer(ScriptTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		s.mu.Lock()
		current := s.generation
		s.mu.Unlock()
		if gen != current {
			return 0, fmt.Errorf("field: script evaluation superseded by newer request")
		}
		return res.val, res.err

	case <-timer.C:
		return 0, fmt.Errorf("field: script evaluation timed out after %s", ScriptTimeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (s *Script) evaluate(x, y float64) (float64, error) {
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, x, y)

	if err := env.LoadString(s.source); err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}
	res, err := env.Run()
	if err != nil {
		return 0, fmt.Errorf("eval: %w", err)
	}

	return toFloat64(res)
}

func toFloat64(v zygo.Sexp) (float64, error) {
	switch n := v.(type) {
	case *zygo.SexpFloat:
		return n.Val, nil
	case *zygo.SexpInt:
		return float64(n.Val), nil
	}
	return 0, fmt.Errorf("script must evaluate to a number, got %T (%s)", v, v.SexpString(nil))
}
