package tween

import (
	"errors"
	"fmt"
)

// ErrDetached is returned by accessors for targets that no longer accept
// writes. A record whose target fails this way is dropped without affecting
// other records.
var ErrDetached = errors.New("target detached")

// ErrUnsupportedTarget is returned by [PropertiesAccessor] for targets that
// do not implement [Properties].
var ErrUnsupportedTarget = errors.New("unsupported target")

// Accessor reads and writes properties of tween targets. The engine reads a
// property once, when a tween without an explicit start value is created,
// and writes it during the apply pass of each tick.
type Accessor interface {
	Get(target any, property string) (any, error)
	Set(target any, property string, v any) error
}

// Properties is implemented by targets that read and write their own
// properties.
type Properties interface {
	Property(name string) (any, error)
	SetProperty(name string, v any) error
}

// PropertiesAccessor is the default [Accessor]. It dispatches to targets
// implementing [Properties].
type PropertiesAccessor struct{}

func (PropertiesAccessor) Get(target any, property string) (any, error) {
	p, ok := target.(Properties)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
	return p.Property(property)
}

func (PropertiesAccessor) Set(target any, property string, v any) error {
	p, ok := target.(Properties)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
	return p.SetProperty(property, v)
}

// AccessorFuncs adapts a pair of functions to [Accessor].
type AccessorFuncs struct {
	GetFunc func(target any, property string) (any, error)
	SetFunc func(target any, property string, v any) error
}

func (a AccessorFuncs) Get(target any, property string) (any, error) {
	return a.GetFunc(target, property)
}

func (a AccessorFuncs) Set(target any, property string, v any) error {
	return a.SetFunc(target, property, v)
}
