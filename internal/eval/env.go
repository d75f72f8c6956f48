package eval

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// Func is a registered pipeline function. Arguments arrive evaluated;
// apply/apply_mut operands receive a *Ref argument.
type Func func(ctx context.Context, env *Env, args []Value) (Value, error)

// MethodFunc is a registered method. The receiver arrives evaluated
// and may be a *Ref for mutating methods.
type MethodFunc func(ctx context.Context, env *Env, recv Value, args []Value) (Value, error)

// Env is the registry of callables, methods and constants a pipeline
// evaluates against, plus the writers its side effects print to.
type Env struct {
	mu      sync.RWMutex
	funcs   map[string]Func
	methods map[string]MethodFunc
	consts  map[string]Value

	Stdout io.Writer
	Stderr io.Writer
}

// NewEnv creates an empty environment writing to the process streams.
func NewEnv() *Env {
	return &Env{
		funcs:   make(map[string]Func),
		methods: make(map[string]MethodFunc),
		consts:  make(map[string]Value),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// RegisterFunc adds a named function.
func (e *Env) RegisterFunc(name string, f Func) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.funcs[name] = f
}

// RegisterMethod adds a named method.
func (e *Env) RegisterMethod(name string, f MethodFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.methods[name] = f
}

// RegisterConst adds a named constant usable in operand expressions.
func (e *Env) RegisterConst(name string, v Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.consts[name] = v
}

// LookupFunc returns a function by name.
func (e *Env) LookupFunc(name string) (Func, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.funcs[name]
	if !ok {
		return nil, fmt.Errorf("unknown function: %q", name)
	}
	return f, nil
}

// LookupMethod returns a method by name.
func (e *Env) LookupMethod(name string) (MethodFunc, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %q", name)
	}
	return f, nil
}

// LookupConst returns a constant by name.
func (e *Env) LookupConst(name string) (Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.consts[name]
	return v, ok
}

// Funcs returns all registered function names sorted.
func (e *Env) Funcs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sortedKeys(e.funcs)
}

// Methods returns all registered method names sorted.
func (e *Env) Methods() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sortedKeys(e.methods)
}

// Consts returns all registered constant names sorted.
func (e *Env) Consts() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sortedKeys(e.consts)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
