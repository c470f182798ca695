package indexset

import (
	"fmt"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

const panicIDRange = "indexset: identifier out of range [0, MaxUint32]"

// Set is an ordered set of non-negative identifiers.
// The zero value is not usable; construct with New, Full or FromIDs.
type Set struct {
	rb *roaring.Bitmap
}

// New returns a set containing ids.
func New(ids ...int) *Set {
	s := &Set{rb: roaring.New()}
	for _, id := range ids {
		s.rb.Add(toID(id))
	}

	return s
}

// Full returns the set {0, 1, ..., n-1}. n <= 0 yields an empty set.
func Full(n int) *Set {
	s := &Set{rb: roaring.New()}
	if n > 0 {
		s.rb.AddRange(0, uint64(n))
	}

	return s
}

// FromIDs is New for an existing slice.
func FromIDs(ids []int) *Set { return New(ids...) }

// toID converts an identifier to the bitmap domain.
// Negative or oversized identifiers are programmer errors.
func toID(id int) uint32 {
	if id < 0 || uint64(id) > math.MaxUint32 {
		panic(panicIDRange)
	}

	return uint32(id)
}

// Add inserts id. Adding an existing member is a no-op.
func (s *Set) Add(id int) { s.rb.Add(toID(id)) }

// Remove deletes id. Removing a non-member is a no-op.
func (s *Set) Remove(id int) { s.rb.Remove(toID(id)) }

// Contains reports membership.
func (s *Set) Contains(id int) bool {
	if id < 0 || uint64(id) > math.MaxUint32 {
		return false
	}

	return s.rb.Contains(uint32(id))
}

// Len returns the number of members.
func (s *Set) Len() int { return int(s.rb.GetCardinality()) }

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool { return s.rb.IsEmpty() }

// IDs returns the members in ascending order as a fresh slice.
func (s *Set) IDs() []int {
	raw := s.rb.ToArray()
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}

	return out
}

// ForEach calls fn for each member in ascending order until fn returns false.
func (s *Set) ForEach(fn func(id int) bool) {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			return
		}
	}
}

// Complement returns the identifiers in [0, n) that are not members, ascending.
// These are the addition candidates of a bicluster over an n-wide axis.
func (s *Set) Complement(n int) []int {
	if n <= 0 {
		return nil
	}
	flipped := roaring.Flip(s.rb, 0, uint64(n))
	raw := flipped.ToArray()
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		if int(v) < n {
			out = append(out, int(v))
		}
	}

	return out
}

// Equal reports whether both sets hold exactly the same members.
func (s *Set) Equal(o *Set) bool {
	if o == nil {
		return false
	}

	return s.rb.Equals(o.rb)
}

// String renders the set as "{1, 4, 7}".
func (s *Set) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	s.ForEach(func(id int) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%d", id)
		return true
	})
	b.WriteString("}")

	return b.String()
}
