package entropy

import "fmt"

// WriterViolationError reports that two writer operations (refresh,
// registerComponent, addGetGroup, addSystem, or an immediate mutator)
// overlapped on the same Universe, breaking the single-writer
// contract.
type WriterViolationError struct {
	Role string
}

func (e WriterViolationError) Error() string {
	return fmt.Sprintf("entropy: concurrent writer access for role %q", e.Role)
}

// EntityOverflowError reports that an index or generation value does
// not fit in the configured bit widths.
type EntityOverflowError struct {
	Index, Generation uint32
}

func (e EntityOverflowError) Error() string {
	return fmt.Sprintf("entropy: entity id overflow (index=%d generation=%d)", e.Index, e.Generation)
}

// OutOfIdsError reports that the entity table is at MAX_ENTITIES with
// no free index available.
type OutOfIdsError struct{}

func (e OutOfIdsError) Error() string {
	return "entropy: entity table exhausted, no free index available"
}

// ComponentRegistryFullError reports that MAX_COMPONENTS component
// types have already been registered on a Universe.
type ComponentRegistryFullError struct{}

func (e ComponentRegistryFullError) Error() string {
	return "entropy: component registry is at capacity"
}

// ComponentAlreadyRegisteredError reports a duplicate registration of
// the same component type.
type ComponentAlreadyRegisteredError struct {
	Type string
}

func (e ComponentAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("entropy: component %s already registered", e.Type)
}

// ComponentNotRegisteredError reports use of a component type that was
// never registered on this Universe.
type ComponentNotRegisteredError struct {
	Type string
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("entropy: component %s is not registered", e.Type)
}

// GroupRegistryFullError reports that MAX_GROUPS groups already exist
// on a Universe.
type GroupRegistryFullError struct{}

func (e GroupRegistryFullError) Error() string {
	return "entropy: group registry is at capacity"
}

// StaleEntityError reports an operation against an EntityId whose
// generation no longer matches the live record at that index.
type StaleEntityError struct {
	ID EntityId
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("entropy: entity %v is stale", e.ID)
}

// HolderAddFailedError reports a component holder returning nil from
// Add, which has no recoverable interpretation.
type HolderAddFailedError struct {
	Type string
}

func (e HolderAddFailedError) Error() string {
	return fmt.Sprintf("entropy: holder for %s failed to add a slot", e.Type)
}
