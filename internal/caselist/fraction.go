package caselist

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction selects every Count-th case starting at Index, splitting a suite
// into Count disjoint shards that are stable for a fixed hierarchy.
type Fraction struct {
	Index int
	Count int
}

// ParseFraction parses "index,count".
func ParseFraction(s string) (*Fraction, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q, want index,count", ErrInvalidFraction, s)
	}

	var nums [2]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFraction, s, err)
		}
		nums[i] = n
	}

	f := &Fraction{Index: nums[0], Count: nums[1]}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks 0 <= Index < Count.
func (f Fraction) Validate() error {
	if f.Count <= 0 || f.Index < 0 || f.Index >= f.Count {
		return fmt.Errorf("%w: %s, want 0 <= index < count", ErrInvalidFraction, f)
	}
	return nil
}

// Contains reports whether the case with the given ordering index falls into
// this fraction.
func (f Fraction) Contains(index int) bool {
	return index%f.Count == f.Index
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d,%d", f.Index, f.Count)
}
