package insertsite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidBoundary is returned for a fixed boundary outside the insert.
	ErrInvalidBoundary = errors.New("invalid insertion boundary")
	// ErrInvalidMode is returned for a boundary mode that is none of
	// automatic, default or fixed.
	ErrInvalidMode = errors.New("invalid insertion-centre mode")
)

// ModeKind selects how the insertion boundary is resolved.
type ModeKind int

const (
	// Automatic estimates the boundary from the alignments.
	Automatic ModeKind = iota + 1
	// Default uses half the insert length.
	Default
	// Fixed uses a caller-supplied coordinate.
	Fixed
)

func (k ModeKind) String() string {
	switch k {
	case Automatic:
		return "automatic"
	case Default:
		return "default"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("mode(%d)", int(k))
}

// Mode is the requested boundary mode.  Coordinate is meaningful only for
// Fixed.  The zero Mode is invalid.
type Mode struct {
	Kind       ModeKind
	Coordinate int
}

var (
	// AutomaticMode requests an estimated boundary.
	AutomaticMode = Mode{Kind: Automatic}
	// DefaultMode requests half the insert length.
	DefaultMode = Mode{Kind: Default}
)

// FixedMode requests the boundary at coordinate.
func FixedMode(coordinate int) Mode {
	return Mode{Kind: Fixed, Coordinate: coordinate}
}

func (m Mode) String() string {
	if m.Kind == Fixed {
		return strconv.Itoa(m.Coordinate)
	}
	if m.Kind == Automatic {
		return "auto"
	}
	return m.Kind.String()
}

// ParseMode parses the command-line form of a Mode: "auto", "default", or a
// decimal coordinate.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "automatic":
		return AutomaticMode, nil
	case "default":
		return DefaultMode, nil
	}
	c, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Mode{}, errors.Wrapf(ErrInvalidMode, "%q: must be one of auto, default, or an integer coordinate", s)
	}
	return FixedMode(c), nil
}
