package layout

import (
	"fmt"

	"github.com/aretw0/cssmachine/pkg/domain"
)

// ArithmeticRangeError reports a hop request that cannot be expressed with forward
// sibling combinators. It always indicates a bug in the caller.
type ArithmeticRangeError struct {
	Anchor Slot
	Target Slot
	From   int
	To     int
}

func (e *ArithmeticRangeError) Error() string {
	if e.From < 0 || e.To < 0 {
		return fmt.Sprintf("offset: %s -> %s: slot not in layout", e.Anchor, e.Target)
	}
	return fmt.Sprintf("offset: %s (at %d) -> %s (at %d): target precedes anchor", e.Anchor, e.From, e.Target, e.To)
}

func (e *ArithmeticRangeError) Unwrap() error {
	return domain.ErrInternal
}

// HopsBetween returns how many siblings later target sits relative to anchor.
func HopsBetween(s *Stream, anchor, target Slot) (int, error) {
	from, okFrom := s.Position(anchor)
	to, okTo := s.Position(target)
	if !okFrom {
		from = -1
	}
	if !okTo {
		to = -1
	}
	if !okFrom || !okTo || to < from {
		return 0, &ArithmeticRangeError{Anchor: anchor, Target: target, From: from, To: to}
	}
	return to - from, nil
}
