// Package input provides the paddle's input sources.
// Drivers register themselves in init() functions, allowing the host
// to discover and instantiate them by name without hardcoded dependencies.
package input

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/paddle-arena/internal/core"
	"github.com/vovakirdan/paddle-arena/internal/sim"
)

// ErrUnknownDriver is returned by Create for an unregistered name.
var ErrUnknownDriver = errors.New("input: unknown driver")

// Driver produces the held actions for each tick.
type Driver interface {
	// Name returns the identifier the driver is registered under.
	Name() string

	// Frame returns the input for the step that follows tick, given the
	// most recent snapshot. Drivers must not retain view.
	Frame(tick uint64, view sim.Snapshot) core.InputFrame
}

// Options carries driver parameters from the command line.
type Options struct {
	ScriptPath string  // Required by "script"
	DeadZone   float64 // Used by "autopilot", 0 = driver default
}

// Info contains metadata about a registered driver.
type Info struct {
	Name        string
	Description string
}

// Factory creates a new driver instance.
type Factory func(opts Options) (Driver, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a driver factory to the registry.
// Typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("input: driver %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered drivers, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a driver by name.
func Create(name string, opts Options) (Driver, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, name)
	}
	return f(opts)
}

// Exists checks if a driver with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
