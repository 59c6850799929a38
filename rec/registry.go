// Package rec provides a central registry for record and line type metadata.
package rec

import (
	"fmt"
	"reflect"
	"sync"
)

var globalRegistry = &Registry{
	byName: make(map[string]*TypeInfo),
	byType: make(map[reflect.Type]*TypeInfo),
}

// Registry maintains a mapping between Go struct types and record metadata.
// Registration may run from package init functions, so the registry is the
// one place in this package guarded by a lock.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*TypeInfo
	byType map[reflect.Type]*TypeInfo
}

// Register adds a Go struct type to the global registry. The type T must
// embed either BaseRecord or BaseLine. Registering the same type twice is
// idempotent; registering a second type under an already-claimed record
// type name is an error.
func Register[T any]() error {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	info, err := ExtractTypeInfo(t)
	if err != nil {
		return fmt.Errorf("registering %s: %w", t.Name(), err)
	}

	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if info.Kind == TypeKindRecord {
		if existing, ok := globalRegistry.byName[info.RecordType]; ok {
			if existing.GoType != t {
				return fmt.Errorf("record type %q already registered to %s", info.RecordType, existing.GoType.Name())
			}
		}
		globalRegistry.byName[info.RecordType] = info
	}
	globalRegistry.byType[t] = info
	return nil
}

// MustRegister is a helper that calls Register and panics if an error
// occurs. It is intended for use during application initialization.
func MustRegister[T any]() {
	if err := Register[T](); err != nil {
		panic(err)
	}
}

// Lookup retrieves TypeInfo for a given record type name.
func Lookup(recordType string) (*TypeInfo, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	info, ok := globalRegistry.byName[recordType]
	return info, ok
}

// LookupType retrieves TypeInfo for a given Go reflect.Type.
func LookupType(t reflect.Type) (*TypeInfo, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	info, ok := globalRegistry.byType[t]
	return info, ok
}

// RegisteredTypes returns TypeInfo for all registered types.
func RegisteredTypes() []*TypeInfo {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	result := make([]*TypeInfo, 0, len(globalRegistry.byType))
	for _, info := range globalRegistry.byType {
		result = append(result, info)
	}
	return result
}

// ClearRegistry resets the global registry, removing all registered types.
// This is primarily used for testing purposes.
func ClearRegistry() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.byName = make(map[string]*TypeInfo)
	globalRegistry.byType = make(map[reflect.Type]*TypeInfo)
}

// infoForType returns the descriptor table for t, extracting and caching it
// on first use when the type was never explicitly registered.
func infoForType(t reflect.Type) (*TypeInfo, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if info, ok := LookupType(t); ok {
		return info, nil
	}
	info, err := ExtractTypeInfo(t)
	if err != nil {
		return nil, err
	}
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if cached, ok := globalRegistry.byType[t]; ok {
		return cached, nil
	}
	globalRegistry.byType[t] = info
	return info, nil
}
