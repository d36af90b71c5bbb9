package formats

// AttributeTable is an append-only table of fixed-arity float tuples
// (positions, texture coordinates or normals).
type AttributeTable[T any] struct {
	items []T
	arity int
}

func newAttributeTable[T any](arity int) AttributeTable[T] {
	return AttributeTable[T]{arity: arity}
}

// Len returns the number of tuples.
func (t *AttributeTable[T]) Len() int {
	return len(t.items)
}

// Arity returns the number of floats per tuple.
func (t *AttributeTable[T]) Arity() int {
	return t.arity
}

// FloatLen returns the number of floats stored (Len * Arity).
func (t *AttributeTable[T]) FloatLen() int {
	return len(t.items) * t.arity
}

// At returns tuple i. Returns false if i is out of bounds.
func (t *AttributeTable[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(t.items) {
		var zero T
		return zero, false
	}
	return t.items[i], true
}

// append stores a tuple by value; growth never invalidates recorded indices.
func (t *AttributeTable[T]) append(v T) {
	t.items = append(t.items, v)
}
