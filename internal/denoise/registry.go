package denoise

import (
	"fmt"
	"sort"
	"sync"
)

type entry struct {
	engine Engine
	reason string // why the engine is unavailable; empty when engine is set
}

var (
	mu       sync.RWMutex
	registry = map[string]entry{}
)

// Register makes engine available under name, replacing any previous entry.
func Register(name string, engine Engine) {
	if engine == nil {
		panic("denoise: Register engine is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	registry[name] = entry{engine: engine}
}

// RegisterUnavailable records a known engine that cannot run in this build.
// A later Register for the same name wins.
func RegisterUnavailable(name, reason string) {
	mu.Lock()
	defer mu.Unlock()
	if e, ok := registry[name]; ok && e.engine != nil {
		return
	}
	registry[name] = entry{reason: reason}
}

// Unregister removes name from the registry.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(registry, name)
}

// Lookup returns the engine registered under name.
func Lookup(name string) (Engine, error) {
	mu.RLock()
	e, ok := registry[name]
	mu.RUnlock()
	switch {
	case !ok:
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, name)
	case e.engine == nil:
		return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, name, e.reason)
	}
	return e.engine, nil
}

// Info describes a registry entry.
type Info struct {
	Name      string
	Available bool
	Reason    string
}

// Engines lists every registered engine sorted by name.
func Engines() []Info {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Info, 0, len(registry))
	for name, e := range registry {
		out = append(out, Info{Name: name, Available: e.engine != nil, Reason: e.reason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
