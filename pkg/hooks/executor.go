package hooks

import (
	"fmt"
	"os"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/okrause/mediasync/pkg/errors"
)

// Executor runs Tengo scripts registered per hook type.
type Executor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewExecutor creates an empty script executor.
func NewExecutor() *Executor {
	return &Executor{
		scripts: make(map[HookType]string),
	}
}

// LoadScripts reads the script files referenced by the config mapping
// (hook name to file path) and registers them.
func LoadScripts(scripts map[string]string) (*Executor, error) {
	e := NewExecutor()
	for name, path := range scripts {
		hookType := HookType(name)
		if !validHookTypes[hookType] {
			return nil, fmt.Errorf("unknown hook type: %s", name)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load hook script %s", path)
		}
		e.AddScript(hookType, string(source))
	}
	return e, nil
}

// Execute runs the script registered for hookType, if any. A nil
// Executor runs nothing.
func (e *Executor) Execute(hookType HookType, ctx HookContext) error {
	if e == nil {
		return nil
	}

	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	instance := tengo.NewScript([]byte(script))
	instance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times"))

	if err := instance.Add("file", ctx.File); err != nil {
		return fmt.Errorf("failed to add file to script: %w", err)
	}
	if err := instance.Add("name", ctx.Name); err != nil {
		return fmt.Errorf("failed to add name to script: %w", err)
	}
	if err := instance.Add("url", ctx.URL); err != nil {
		return fmt.Errorf("failed to add url to script: %w", err)
	}
	for k, v := range ctx.Vars {
		if err := instance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable %q to script: %w", k, err)
		}
	}

	compiled, err := instance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, errors.ErrHookExecution, err)
	}

	// A script signals failure by setting err.
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", errors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddScript adds or replaces the script for hookType.
func (e *Executor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// HasScript checks if a script exists for hookType.
func (e *Executor) HasScript(hookType HookType) bool {
	if e == nil {
		return false
	}
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
