package insertsite

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Boundary is the resolved insertion-centre coordinate on the insert
// sequence.
type Boundary struct {
	Pos int
	// Requested is the mode the caller asked for.
	Requested Mode
	// Source is how Pos was produced.  It is Default when an automatic
	// estimate was unavailable.
	Source ModeKind
}

func (b Boundary) String() string {
	if b.Requested.Kind == Automatic && b.Source != Automatic {
		return fmt.Sprintf("%d (%v, no automatic estimate)", b.Pos, b.Source)
	}
	return fmt.Sprintf("%d (%v)", b.Pos, b.Source)
}

// halfLength is n/2 rounded to the nearest integer, halves rounding up.
func halfLength(n int) int {
	return (n + 1) / 2
}

// Resolve produces the insertion boundary for an insert of insertLen bases.
// estimate is consulted only in Automatic mode; it returns false when no
// estimate can be made, in which case the Default boundary is used.
func Resolve(mode Mode, insertLen int, estimate func() (int, bool)) (Boundary, error) {
	if insertLen <= 0 {
		return Boundary{}, errors.Errorf("insert length must be positive, got %d", insertLen)
	}
	b := Boundary{Requested: mode, Source: mode.Kind}
	switch mode.Kind {
	case Automatic:
		if estimate != nil {
			if pos, ok := estimate(); ok {
				if pos > 0 && pos <= insertLen {
					b.Pos = pos
					return b, nil
				}
				log.Error.Printf("automatic boundary estimate %d is outside the insert (1-%d), ignoring it",
					pos, insertLen)
			}
		}
		log.Printf("no automatic boundary estimate, using half the insert length")
		b.Source = Default
		b.Pos = halfLength(insertLen)
	case Default:
		b.Pos = halfLength(insertLen)
	case Fixed:
		if mode.Coordinate <= 0 || mode.Coordinate > insertLen {
			return Boundary{}, errors.Wrapf(ErrInvalidBoundary,
				"coordinate %d: must satisfy 0 < coordinate <= %d (insert length)", mode.Coordinate, insertLen)
		}
		b.Pos = mode.Coordinate
	default:
		return Boundary{}, errors.Wrapf(ErrInvalidMode,
			"%v: must be one of %v, %v, %v", mode.Kind, Automatic, Default, Fixed)
	}
	return b, nil
}
