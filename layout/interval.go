package layout

import (
	"fmt"
	"math"
)

// Undefined marks a value that was not specified: counts, span bounds and alignment values.
const Undefined = math.MinInt32

// Interval is half-open range of grid line indices [Min, Max).
type Interval struct {
	Min int
	Max int
}

func (i Interval) Size() int { return i.Max - i.Min }

// Inverse swaps bounds, turning a minimum gap constraint into its reverse.
func (i Interval) Inverse() Interval { return Interval{Min: i.Max, Max: i.Min} }

// IsDefined tells when both bounds are real line indices.
func (i Interval) IsDefined() bool { return i.Min != Undefined && i.Max != Undefined }

// Validate checks that interval can be used as span of a child.
func (i Interval) Validate() error {
	if !i.IsDefined() {
		return fmt.Errorf("%w: %v has undefined bound", ErrInvalidSpan, i)
	}
	if i.Min < 0 {
		return fmt.Errorf("%w: %v starts before line 0", ErrInvalidSpan, i)
	}
	if i.Min > i.Max {
		return fmt.Errorf("%w: %v is reversed", ErrInvalidSpan, i)
	}
	return nil
}

func (i Interval) String() string { return fmt.Sprintf("[%d, %d]", i.Min, i.Max) }
