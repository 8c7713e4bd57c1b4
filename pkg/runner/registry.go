package runner

import (
	"sort"
	"sync"

	"github.com/speedsim/simless/pkg/harness"
	"github.com/speedsim/simless/pkg/plugin"
)

// Factory builds a plugin bound to its harness context.
type Factory func(ctx *harness.Context) plugin.Plugin

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a plugin available to the runner under the given name.
// Plugins call Register from an init function, the way database drivers do.
// Registering a nil factory or the same name twice panics.
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if f == nil {
		panic("runner: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("runner: Register called twice for plugin " + name)
	}
	factories[name] = f
}

// Deregister removes a registration; tests use it to install fakes.
func Deregister(name string) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	delete(factories, name)
}

func lookup(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Plugins returns the registered plugin names sorted alphabetically.
func Plugins() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
