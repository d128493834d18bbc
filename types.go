package regiontree

import (
	"errors"
	"fmt"
	"strings"
)

// Addr is a simulated memory address.
type Addr uint64

func (a Addr) String() string {
	return fmt.Sprintf("%#x", uint64(a))
}

// ApproxType says how the bytes of a region may be approximated.
type ApproxType uint8

const (
	NoApprox ApproxType = iota
	ApproxUint
	ApproxFP
)

// ErrUnknownApprox is returned when parsing an approximation name fails.
var ErrUnknownApprox = errors.New("unknown approximation type")

func (t ApproxType) String() string {
	switch t {
	case NoApprox:
		return "exact"
	case ApproxUint:
		return "uint"
	case ApproxFP:
		return "fp"
	}
	return fmt.Sprintf("approx(%d)", uint8(t))
}

// ParseApproxType accepts the names produced by ApproxType.String.
func ParseApproxType(s string) (ApproxType, error) {
	switch strings.ToLower(s) {
	case "exact", "none":
		return NoApprox, nil
	case "uint", "int":
		return ApproxUint, nil
	case "fp", "float":
		return ApproxFP, nil
	}
	return NoApprox, fmt.Errorf("%w: %q", ErrUnknownApprox, s)
}

// Region is a recorded address range. Addr is the ordering key; the other
// fields are payload as far as any dictionary is concerned.
type Region struct {
	Addr   Addr
	Range  uint32
	Start  Addr
	End    Addr // exclusive
	Approx ApproxType
}

// NewRegion builds a region starting at addr covering size bytes.
func NewRegion(addr Addr, size uint32, approx ApproxType) *Region {
	return &Region{
		Addr:   addr,
		Range:  size,
		Start:  addr,
		End:    addr + Addr(size),
		Approx: approx,
	}
}

// KeyRegion returns a region usable only as a lookup key.
func KeyRegion(addr Addr) *Region {
	return &Region{Addr: addr, Start: addr, End: addr}
}

// Contains reports whether addr falls in [Start, End).
func (r *Region) Contains(addr Addr) bool {
	return r.Start <= addr && addr < r.End
}

// Overlaps reports whether the two regions share at least one byte.
func (r *Region) Overlaps(o *Region) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r *Region) String() string {
	return fmt.Sprintf("[%s,%s) %s", r.Start, r.End, r.Approx)
}

// CompareRegions orders regions by address.
func CompareRegions(a, b *Region) int {
	switch {
	case a.Addr < b.Addr:
		return -1
	case a.Addr > b.Addr:
		return 1
	}
	return 0
}

// RegionScore maps a region to its address, truncated to uint.
func RegionScore(r *Region) uint {
	return uint(r.Addr)
}
