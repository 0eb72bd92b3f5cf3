package module

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/gopacket/layers"
	"github.com/google/uuid"
)

var (
	// ErrStaleHandle is returned when a handle no longer refers to a
	// registered descriptor
	ErrStaleHandle = errors.New("module: handle does not refer to a registered module")
	// ErrNotFound is returned when no module is registered under a name
	ErrNotFound = errors.New("module: not found")
	// ErrExists is returned when registering a name twice
	ErrExists = errors.New("module: already registered")
)

// Registry owns module descriptors and issues handles to them
type Registry struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Descriptor
	byName map[string]uuid.UUID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]Descriptor),
		byName: make(map[string]uuid.UUID),
	}
}

// Register adds a descriptor and returns a handle to it
func (r *Registry) Register(d Descriptor) (Handle, error) {
	if d.Name == "" {
		return Handle{}, fmt.Errorf("failed to register module: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[d.Name]; ok {
		return Handle{}, fmt.Errorf("failed to register module %q: %w", d.Name, ErrExists)
	}
	id := uuid.New()
	r.byID[id] = d
	r.byName[d.Name] = id
	return Handle{id: id}, nil
}

// Lookup returns the handle of the module registered under name
func (r *Registry) Lookup(name string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return Handle{}, fmt.Errorf("module %q: %w", name, ErrNotFound)
	}
	return Handle{id: id}, nil
}

// Descriptor resolves a handle. It fails with ErrStaleHandle once the module
// has been unregistered, which makes a use-after-release by a config visible.
func (r *Registry) Descriptor(h Handle) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[h.id]
	if !ok {
		return Descriptor{}, fmt.Errorf("module %s: %w", h, ErrStaleHandle)
	}
	return d, nil
}

// Unregister removes the module referred to by h
func (r *Registry) Unregister(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[h.id]
	if !ok {
		return fmt.Errorf("module %s: %w", h, ErrStaleHandle)
	}
	delete(r.byID, h.id)
	delete(r.byName, d.Name)
	return nil
}

// Names returns the registered module names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns the descriptors of the backends shipped with the sensor
func Builtins() []Descriptor {
	return []Descriptor{
		{
			Name:     "pcap",
			Version:  3,
			Type:     TypeFileCapable | TypeIntfCapable | TypeMultiInstance,
			LinkType: layers.LinkTypeEthernet,
		},
		{
			Name:     "afpacket",
			Version:  3,
			Type:     TypeIntfCapable | TypeInlineCapable | TypeMultiInstance | TypeNoUnpriv,
			LinkType: layers.LinkTypeEthernet,
		},
		{
			Name:     "dump",
			Version:  3,
			Type:     TypeFileCapable | TypeIntfCapable | TypeInlineCapable | TypeMultiInstance,
			LinkType: layers.LinkTypeEthernet,
		},
		{
			Name:     "nfq",
			Version:  3,
			Type:     TypeInlineCapable | TypeMultiInstance | TypeNoUnpriv,
			LinkType: layers.LinkTypeRaw,
		},
	}
}

// RegisterBuiltins registers every builtin descriptor
func RegisterBuiltins(r *Registry) error {
	for _, d := range Builtins() {
		if _, err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}
