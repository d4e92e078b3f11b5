package interpreter

import (
	"slices"

	"github.com/samber/lo"
)

// Environment holds the variable bindings of one console session. It is not
// safe for concurrent use; the session loop owns it and lends it to Eval.
type Environment struct {
	store map[string]Value
}

// Entry is a single binding as returned by Entries.
type Entry struct {
	Name  string
	Value Value
}

// NewEnvironment creates a new, empty environment
func NewEnvironment() *Environment {
	return &Environment{
		store: make(map[string]Value),
	}
}

// Get retrieves a value from the environment by name
func (e *Environment) Get(name string) (Value, bool) {
	value, ok := e.store[name]
	return value, ok
}

// Set creates or overwrites a binding
func (e *Environment) Set(name string, value Value) {
	e.store[name] = value
}

// Has checks if a variable is bound
func (e *Environment) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Remove deletes a binding. Removing a name that is not bound is a no-op;
// the return value reports whether anything was deleted.
func (e *Environment) Remove(name string) bool {
	if _, ok := e.store[name]; !ok {
		return false
	}
	delete(e.store, name)
	return true
}

// Len returns the number of bindings
func (e *Environment) Len() int {
	return len(e.store)
}

// Names returns all bound names in ascending order
func (e *Environment) Names() []string {
	names := lo.Keys(e.store)
	slices.Sort(names)
	return names
}

// Entries returns a snapshot of all bindings ordered by name. The snapshot is
// not affected by later changes to the environment.
func (e *Environment) Entries() []Entry {
	return lo.Map(e.Names(), func(name string, _ int) Entry {
		return Entry{Name: name, Value: e.store[name]}
	})
}

// Clear removes every binding
func (e *Environment) Clear() {
	clear(e.store)
}
