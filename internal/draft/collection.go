package draft

import (
	"padstock/pkg/errors"
)

// list is an ordered collection with an optional size bound and an optional
// repair hook. The same abstraction backs the variant collection, the global
// image set and every per-variant image set; the injected policies are what
// differ (bound check for images, default-variant repair for variants).
//
// The repair hook runs after removals and on demand via normalize; it is
// deliberately not run after updates, so a transiently invalid state (such as
// no default variant while the admin is mid-edit) survives until submission.
type list[T any] struct {
	items  []T
	bound  int // 0 means unbounded
	repair func(items []T)
}

func newList[T any](bound int, repair func(items []T)) *list[T] {
	return &list[T]{bound: bound, repair: repair}
}

func (l *list[T]) len() int {
	return len(l.items)
}

// appendAll accepts the whole batch or none of it: if adding every element
// would exceed the bound, the list is left untouched.
func (l *list[T]) appendAll(items ...T) error {
	if l.bound > 0 && len(l.items)+len(items) > l.bound {
		return errors.BadRequest("collection bound exceeded", nil)
	}
	l.items = append(l.items, items...)
	return nil
}

func (l *list[T]) removeAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return errors.BadRequest("index out of range", nil)
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	if l.repair != nil {
		l.repair(l.items)
	}
	return nil
}

func (l *list[T]) updateAt(i int, fn func(item *T)) error {
	if i < 0 || i >= len(l.items) {
		return errors.BadRequest("index out of range", nil)
	}
	fn(&l.items[i])
	return nil
}

// seed replaces the contents without the bound check. Hydrating persisted
// state is the only caller: the bound governs additions, not what is already
// stored, and records may predate the bound.
func (l *list[T]) seed(items []T) {
	l.items = items
}

func (l *list[T]) normalize() {
	if l.repair != nil {
		l.repair(l.items)
	}
}

func (l *list[T]) at(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// all returns the backing slice; callers must not reorder it.
func (l *list[T]) all() []T {
	return l.items
}
