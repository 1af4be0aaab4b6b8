// Package script exposes the building generator as a small Lisp DSL.
// It wraps zygomys in a sandboxed environment: (building ...) builds
// one shell, (batch ...) runs the bulk variation driver, and the
// resulting meshes accumulate in the evaluation result.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/ashlar/pkg/builder"
)

// EvalError is a non-fatal error from user source: a parse failure or
// a runtime error inside the script.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result collects everything a script generated, in evaluation order.
type Result struct {
	Buildings []builder.Placed
}

// Engine wraps the zygomys interpreter. It is safe for concurrent
// use; every Evaluate call runs in a fresh sandbox so scripts cannot
// observe each other.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an evaluation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs source and returns the generated buildings.
//
// Return semantics:
//   - success: result + nil errors + nil error
//   - parse or script failure: nil + eval errors + nil error
//   - fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalOutcome{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// An empty script is a valid program that generates nothing.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	result := &Result{}
	registerBuiltins(env, result)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return result, nil, nil
}

// linePattern matches zygomys "Error on line N: ..." messages.
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches the shorter "line N: ..." form.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// pulling out the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
