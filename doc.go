// Package staticvec provides a fixed-capacity contiguous sequence container
// for allocation-sensitive code.
//
// A Vector[T] holds up to a fixed number of elements decided at construction.
// It never grows: exceeding the capacity is a reportable condition, not a
// resize trigger. The backing storage is allocated exactly once (New) or
// adopted from the caller (Wrap), so steady-state operation performs no heap
// allocation at all.
//
// Fallible operations report their outcome through a closed ErrorCode
// enumeration instead of panicking, and leave the container unchanged on
// failure:
//
//	v := staticvec.New[int]("Requests", 3)
//	v.PushBack(1) // NoError
//	v.PushBack(2) // NoError
//	v.PushBack(3) // NoError
//	v.PushBack(4) // OutOfSpace, nothing changed
//
// Access comes in an unchecked flavor (At) for hot paths with caller-verified
// bounds, and checked flavors (AtIf, FrontIf, BackIf) that return nil instead
// of misbehaving for any out-of-range position.
//
// A Vector fires hooks on element insertion and destruction, which lets
// external observers such as the analysis package track occupancy without the
// container knowing about them.
package staticvec
