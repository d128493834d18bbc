package trace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	rt "github.com/cbehopkins/regiontree"
	"github.com/cbehopkins/regiontree/region"
)

// Summary counts what a replay did.
type Summary struct {
	Ops      int
	Added    int
	Rejected int
	Lookups  int
	Hits     int
	Removes  int
	Removed  int
	Pops     int
	Mins     int
	Final    int
}

// Print writes a human readable report.
func (s Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"ops %d\nadd %d (rejected %d)\nlookup %d (hit %d)\nremove %d (removed %d)\npop %d\nmin %d\nregions %d\n",
		s.Ops, s.Added, s.Rejected, s.Lookups, s.Hits, s.Removes, s.Removed, s.Pops, s.Mins, s.Final)
	return err
}

// Replay applies ops to t in order. Rejected adds are counted, not fatal;
// any other tracker error stops the replay.
func Replay(t *region.Tracker, ops []Op, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var s Summary
	for _, op := range ops {
		s.Ops++
		switch op.Kind {
		case Add:
			conflict, err := t.Add(rt.NewRegion(op.Addr, op.Range, op.Approx))
			switch {
			case err == nil:
				s.Added++
			case errors.Is(err, region.ErrOverlap), errors.Is(err, region.ErrEmptyRegion), errors.Is(err, region.ErrWrap):
				s.Rejected++
				logger.Debug("add rejected", "line", op.Line, "op", op.String(), "conflict", conflict, "err", err)
			default:
				return s, fmt.Errorf("line %d: %w", op.Line, err)
			}
		case Lookup:
			s.Lookups++
			if _, ok := t.Lookup(op.Addr); ok {
				s.Hits++
			}
		case Remove:
			s.Removes++
			if _, ok := t.Remove(op.Addr); ok {
				s.Removed++
			}
		case Pop:
			if _, ok := t.PopLowest(); ok {
				s.Pops++
			}
		case Min:
			if _, ok := t.Lowest(); ok {
				s.Mins++
			}
		default:
			return s, fmt.Errorf("line %d: %w: %s", op.Line, ErrSyntax, op.Kind)
		}
	}
	s.Final = t.Len()
	return s, nil
}
