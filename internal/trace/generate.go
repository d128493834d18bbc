package trace

import (
	"github.com/brianvoe/gofakeit/v6"

	rt "github.com/cbehopkins/regiontree"
)

// GenConfig shapes a generated trace.
type GenConfig struct {
	Count int
	// Space is the size of the simulated address space.
	Space uint64
	// MaxRange bounds a single region.
	MaxRange uint32
}

func (c GenConfig) withDefaults() GenConfig {
	if c.Space == 0 {
		c.Space = 1 << 24
	}
	if c.MaxRange == 0 {
		c.MaxRange = 4096
	}
	return c
}

// Generate produces a random trace whose lookups and removes mostly target
// regions the trace has already added, so replays exercise hits as well as
// misses.
func Generate(faker *gofakeit.Faker, cfg GenConfig) []Op {
	cfg = cfg.withDefaults()
	ops := make([]Op, 0, cfg.Count)
	var live []*rt.Region

	randomAddr := func() rt.Addr {
		return rt.Addr(faker.Uint64() % cfg.Space)
	}
	pick := func() *rt.Region {
		return live[faker.Number(0, len(live)-1)]
	}

	for len(ops) < cfg.Count {
		switch roll := faker.Number(1, 100); {
		case roll <= 40 || len(live) == 0:
			size := uint32(faker.Number(1, int(cfg.MaxRange)))
			approx := rt.ApproxType(faker.Number(int(rt.NoApprox), int(rt.ApproxFP)))
			r := rt.NewRegion(randomAddr(), size, approx)
			ops = append(ops, Op{Kind: Add, Addr: r.Addr, Range: r.Range, Approx: r.Approx})
			if !overlapsAny(live, r) {
				live = append(live, r)
			}
		case roll <= 75:
			addr := randomAddr()
			if faker.Bool() {
				r := pick()
				addr = r.Start + rt.Addr(faker.Number(0, int(r.Range)-1))
			}
			ops = append(ops, Op{Kind: Lookup, Addr: addr})
		case roll <= 85:
			i := faker.Number(0, len(live)-1)
			ops = append(ops, Op{Kind: Remove, Addr: live[i].Addr})
			live = append(live[:i], live[i+1:]...)
		case roll <= 90:
			ops = append(ops, Op{Kind: Pop})
			live = dropLowest(live)
		default:
			ops = append(ops, Op{Kind: Min})
		}
	}
	return ops
}

func overlapsAny(live []*rt.Region, r *rt.Region) bool {
	if r.End <= r.Start {
		return true
	}
	for _, l := range live {
		if l.Overlaps(r) {
			return true
		}
	}
	return false
}

func dropLowest(live []*rt.Region) []*rt.Region {
	if len(live) == 0 {
		return live
	}
	low := 0
	for i, r := range live {
		if r.Addr < live[low].Addr {
			low = i
		}
	}
	return append(live[:low], live[low+1:]...)
}
