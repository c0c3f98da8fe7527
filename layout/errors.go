package layout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSpan      = errors.New("invalid span")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrInvalidWeight    = errors.New("invalid weight")
	ErrInvalidCount     = errors.New("invalid count")
	ErrUnknownChild     = errors.New("unknown child")
	ErrNotConverged     = errors.New("constraints did not converge")
)

// ConvergenceError is reported when relaxation still changes locations after the last pass.
// Locations computed so far are kept and used.
type ConvergenceError struct {
	Horizontal bool
	Passes     int
	Cycles     [][]int // grid lines of each strongly connected group of arcs
}

func (e *ConvergenceError) Error() string {
	cycles := make([]string, 0, len(e.Cycles))
	for _, c := range e.Cycles {
		cycles = append(cycles, fmt.Sprint(c))
	}
	return fmt.Sprintf("%s: %s axis after %d passes, cycles: %s", ErrNotConverged, axisName(e.Horizontal), e.Passes, strings.Join(cycles, " "))
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

func axisName(horizontal bool) string {
	if horizontal {
		return "horizontal"
	}
	return "vertical"
}
