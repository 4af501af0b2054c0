package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID is unique per registered kind. Zero is never handed out.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind identifies the store that holds components of type T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

// NewComponentKind registers a kind named after T.
func NewComponentKind[T any]() ComponentKind[T] {
	t := reflect.TypeFor[T]()
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return NewNamedComponentKind[T](name)
}

// NewNamedComponentKind registers a kind with an explicit name, used where
// the type name alone is ambiguous.
func NewNamedComponentKind[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the kind's label in errors and debug output.
func (k ComponentKind[T]) Name() string {
	if k.name == "" {
		return "unregistered"
	}
	return k.name
}

func (k ComponentKind[T]) String() string { return k.Name() }

// ComponentHandle is the package-level variable each component file
// declares, such as TransformComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
