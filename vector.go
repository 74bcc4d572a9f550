package staticvec

import (
	"iter"
	"strings"
)

// A Vector is a fixed-capacity contiguous sequence. It behaves like a growable
// slice, except that its capacity is decided once, at construction, and is
// never extended: inserting into a full vector reports OutOfSpace instead of
// reallocating. The backing storage is allocated exactly once (New) or not at
// all (Wrap), which makes the container suitable for hot paths that must not
// touch the allocator.
//
// Slots in [0, Size()) are live. Slots in [Size(), Capacity()) are dead and
// are kept at the zero value of T, so a removed element never keeps anything
// reachable through the backing storage.
//
// A Vector is not safe for concurrent mutation. External synchronization is
// required, the same as for a plain slice.
type Vector[T any] struct {
	HookableBase

	name    string
	storage []T
	size    int
}

// NameMustBeValid panics if the name is empty or contains white spaces.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	if strings.ContainsAny(name, " \t\n") {
		panic("name " + name + " must not contain white spaces")
	}
}

// New creates an empty Vector that can hold up to capacity elements. The
// backing storage is allocated here, once, and is never resized afterwards.
func New[T any](name string, capacity int) *Vector[T] {
	NameMustBeValid(name)

	if capacity < 0 {
		panic("vector capacity must not be negative")
	}

	return &Vector[T]{
		name:    name,
		storage: make([]T, capacity),
	}
}

// Wrap creates an empty Vector on top of caller-provided storage, performing
// no allocation at all. The capacity is len(backing). Any existing contents of
// backing are discarded and zeroed. The caller must not touch backing directly
// afterwards.
func Wrap[T any](name string, backing []T) *Vector[T] {
	NameMustBeValid(name)

	clear(backing)

	return &Vector[T]{
		name:    name,
		storage: backing,
	}
}

// Name returns the name of the vector.
func (v *Vector[T]) Name() string {
	return v.name
}

// PushBack inserts a copy of val after the last live element. It returns
// OutOfSpace, mutating nothing, if the vector is full.
func (v *Vector[T]) PushBack(val T) ErrorCode {
	if v.size >= len(v.storage) {
		return OutOfSpace
	}

	v.storage[v.size] = val
	v.size++

	if v.NumHooks() > 0 {
		v.InvokeHook(HookCtx{
			Domain: v,
			Pos:    HookPosVecPush,
			Item:   val,
		})
	}

	return NoError
}

// EmplaceBack constructs a new element directly in the slot after the last
// live element, with no intermediate value. The slot is at the zero value of T
// when construct is called; construct may be nil to keep it that way. It
// returns OutOfSpace, mutating nothing, if the vector is full.
//
// This is the insertion path for element types that must not be copied around,
// such as structs holding locks or self-referential state.
func (v *Vector[T]) EmplaceBack(construct func(*T)) ErrorCode {
	if v.size >= len(v.storage) {
		return OutOfSpace
	}

	slot := &v.storage[v.size]
	if construct != nil {
		construct(slot)
	}
	v.size++

	if v.NumHooks() > 0 {
		v.InvokeHook(HookCtx{
			Domain: v,
			Pos:    HookPosVecPush,
			Item:   *slot,
		})
	}

	return NoError
}

// PopBack destroys the last live element. It returns Empty, mutating nothing,
// if the vector holds no elements.
func (v *Vector[T]) PopBack() ErrorCode {
	if v.size == 0 {
		return Empty
	}

	v.size--
	v.dropSlot(v.size)

	return NoError
}

// Clear destroys all live elements in index order. It always succeeds.
func (v *Vector[T]) Clear() {
	for i := 0; i < v.size; i++ {
		v.dropSlot(i)
	}
	v.size = 0
}

// dropSlot destroys the element at slot i: the slot is zeroed so nothing stays
// reachable through it, and the drop hook fires once with the old element.
func (v *Vector[T]) dropSlot(i int) {
	elem := v.storage[i]

	var zero T
	v.storage[i] = zero

	if v.NumHooks() > 0 {
		v.InvokeHook(HookCtx{
			Domain: v,
			Pos:    HookPosVecDrop,
			Item:   elem,
		})
	}
}

// At returns a pointer to the element at pos without checking the live range.
// The caller must guarantee 0 <= pos < Size(); reading a dead slot is a caller
// bug that this method does not detect. Positions outside the backing storage
// panic through Go's built-in bounds check.
func (v *Vector[T]) At(pos int) *T {
	return &v.storage[pos]
}

// AtIf returns a pointer to the element at pos, or nil if pos is outside the
// live range. It is safe for any pos, including positions far beyond the
// capacity.
func (v *Vector[T]) AtIf(pos int) *T {
	if pos < 0 || pos >= v.size {
		return nil
	}

	return &v.storage[pos]
}

// FrontIf returns a pointer to the first element, or nil if the vector is
// empty.
func (v *Vector[T]) FrontIf() *T {
	if v.size == 0 {
		return nil
	}

	return &v.storage[0]
}

// BackIf returns a pointer to the last element, or nil if the vector is empty.
func (v *Vector[T]) BackIf() *T {
	if v.size == 0 {
		return nil
	}

	return &v.storage[v.size-1]
}

// Empty checks if the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Size returns the number of live elements.
func (v *Vector[T]) Size() int {
	return v.size
}

// Capacity returns the fixed capacity. It never changes during the vector's
// lifetime, regardless of Size.
func (v *Vector[T]) Capacity() int {
	return len(v.storage)
}

// Data returns the live range as a contiguous slice sharing the vector's
// storage. Elements may be read and written through it. The view is
// invalidated by any operation that changes Size.
func (v *Vector[T]) Data() []T {
	return v.storage[:v.size]
}

// All returns an index-value iterator over the live range in forward order,
// with the same shape as slices.All.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Backward returns an index-value iterator over the live range in reverse
// order, with the same shape as slices.Backward.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.storage[i]) {
				return
			}
		}
	}
}

// Clone creates a new Vector with the same name and capacity, holding a copy
// of every live element in order. The receiver is unchanged. Clone always
// allocates its own backing storage, even for Wrap-backed vectors.
func (v *Vector[T]) Clone() *Vector[T] {
	c := New[T](v.name, len(v.storage))
	copy(c.storage, v.storage[:v.size])
	c.size = v.size

	return c
}

// CopyFrom replaces the receiver's contents with a copy of src's live
// elements, destroying the receiver's previous elements first. Copying from
// itself is a no-op. It returns OutOfSpace, mutating nothing, if src holds
// more elements than the receiver's capacity.
func (v *Vector[T]) CopyFrom(src *Vector[T]) ErrorCode {
	if v == src {
		return NoError
	}

	if src.size > len(v.storage) {
		return OutOfSpace
	}

	v.Clear()
	copy(v.storage, src.storage[:src.size])
	v.size = src.size

	return NoError
}

// MoveFrom transfers src's live elements into the receiver, destroying the
// receiver's previous elements first. src is left empty. Ownership of the
// moved elements is transferred rather than destroyed, so src's drop hooks do
// not fire for them. Moving from itself is a no-op. It returns OutOfSpace,
// mutating nothing, if src holds more elements than the receiver's capacity.
func (v *Vector[T]) MoveFrom(src *Vector[T]) ErrorCode {
	if v == src {
		return NoError
	}

	if src.size > len(v.storage) {
		return OutOfSpace
	}

	v.Clear()
	copy(v.storage, src.storage[:src.size])
	v.size = src.size

	clear(src.storage[:src.size])
	src.size = 0

	return NoError
}
