// Package correlate resolves declared links between normalized events into
// propagation pairs and full flare→CME→storm chains with elapsed-time
// deltas.
package correlate

import (
	"time"

	"github.com/heliotrack/heliotrack/internal/event"
	"github.com/heliotrack/heliotrack/internal/index"
)

// Pair is one resolved source→target propagation step. Elapsed is
// target start minus source start. A negative delta means the claimed
// effect precedes its cause; such pairs are kept but marked Anomalous and
// excluded from travel-time averages.
type Pair struct {
	Source    event.Event   `json:"source"`
	Target    event.Event   `json:"target"`
	Elapsed   time.Duration `json:"-"`
	Hours     float64       `json:"elapsed_hours"`
	Anomalous bool          `json:"anomalous,omitempty"`
}

// Chain is a resolved flare→CME→storm causal path. One Chain is emitted
// per distinct link path; paths are not deduplicated.
type Chain struct {
	Flare      event.Event   `json:"flare"`
	CME        event.Event   `json:"cme"`
	Storm      event.Event   `json:"storm"`
	FlareToCME time.Duration `json:"-"`
	CMEToStorm time.Duration `json:"-"`
}

// Result holds the derived relationship lists. Ordering is deterministic:
// pairs follow flare iteration order then CME iteration order, each in
// link declaration order; chains iterate flares outer, their CME links
// middle, that CME's storm links inner.
type Result struct {
	Pairs  []Pair  `json:"pairs"`
	Chains []Chain `json:"chains"`
}

// Resolve walks the declared links of every flare and CME through the
// index. Link ids that resolve to nothing (commonly events outside the
// fetched window) are skipped silently; targets that are not downstream of
// the source type are ignored. Traversal depth is fixed at two hops, so a
// link pointing back at an ancestor yields at most an implausible delta,
// never a loop.
func Resolve(flares, cmes []event.Event, ix *index.Index) Result {
	var res Result

	for _, src := range flares {
		res.Pairs = append(res.Pairs, pairsFrom(src, ix)...)
	}
	for _, src := range cmes {
		res.Pairs = append(res.Pairs, pairsFrom(src, ix)...)
	}

	for _, flare := range flares {
		for _, id := range flare.Links {
			cme, ok := ix.Lookup(id)
			if !ok || cme.Type != event.TypeCME {
				continue
			}
			for _, sid := range cme.Links {
				storm, ok := ix.Lookup(sid)
				if !ok || storm.Type != event.TypeStorm {
					continue
				}
				res.Chains = append(res.Chains, Chain{
					Flare:      flare,
					CME:        cme,
					Storm:      storm,
					FlareToCME: cme.Start.Sub(flare.Start),
					CMEToStorm: storm.Start.Sub(cme.Start),
				})
			}
		}
	}
	return res
}

func pairsFrom(src event.Event, ix *index.Index) []Pair {
	var pairs []Pair
	for _, id := range src.Links {
		target, ok := ix.Lookup(id)
		if !ok || !event.Downstream(src.Type, target.Type) {
			continue
		}
		elapsed := target.Start.Sub(src.Start)
		pairs = append(pairs, Pair{
			Source:    src,
			Target:    target,
			Elapsed:   elapsed,
			Hours:     elapsed.Hours(),
			Anomalous: elapsed < 0,
		})
	}
	return pairs
}
