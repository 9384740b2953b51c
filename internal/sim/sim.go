// Package sim plays many reigns with scripted policies and summarizes how
// they end. It is used to balance card catalogs and dependency tables.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/peterkuimelis/swipecity/internal/log"
)

// discard drops events; simulated reigns are only summarized.
type discard struct{}

func (discard) Log(log.GameEvent)        {}
func (discard) Events() []log.GameEvent { return nil }

// Policy picks a side for the card on display.
type Policy func(card *game.Card, resources []game.Resource, rng *rand.Rand) (isRight bool)

// Random swipes either way with equal probability.
func Random(_ *game.Card, _ []game.Resource, rng *rand.Rand) bool {
	return rng.Intn(2) == 1
}

// AlwaysLeft always takes the left choice.
func AlwaysLeft(*game.Card, []game.Resource, *rand.Rand) bool { return false }

// AlwaysRight always takes the right choice.
func AlwaysRight(*game.Card, []game.Resource, *rand.Rand) bool { return true }

// Balanced takes the side whose direct impacts leave the resources closest
// to the middle of their ranges. Cascades are not looked ahead.
func Balanced(card *game.Card, resources []game.Resource, rng *rand.Rand) bool {
	left := strain(resources, card.Left.Impacts)
	right := strain(resources, card.Right.Impacts)
	if left == right {
		return Random(card, resources, rng)
	}
	return right < left
}

// strain is the squared normalized distance from the midpoints after impacts.
func strain(resources []game.Resource, impacts []game.Impact) float64 {
	values := make([]int, len(resources))
	for i, r := range resources {
		values[i] = r.Value
	}
	for _, imp := range impacts {
		if imp.Resource.Valid() && int(imp.Resource) < len(values) {
			values[imp.Resource] += imp.Delta
		}
	}
	var s float64
	for i, r := range resources {
		mid := float64(r.Min+r.Max) / 2
		d := (float64(values[i]) - mid) / float64(r.Max-r.Min)
		s += d * d
	}
	return s
}

// Policies lists the named policies for the command line.
var Policies = map[string]Policy{
	"random":   Random,
	"left":     AlwaysLeft,
	"right":    AlwaysRight,
	"balanced": Balanced,
}

// PolicyNames returns the registered policy names, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(Policies))
	for name := range Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures a simulation.
type Options struct {
	Engine       game.Config // Seed is the base seed; reign i uses Seed+i
	Policy       Policy
	Reigns       int
	MaxDecisions int // reigns still running after this many decisions are cut off
	Workers      int
	OnReign      func(Reign) // called once per finished reign, from any worker
}

// Reign is the outcome of one simulated game.
type Reign struct {
	Index     int
	Decisions int
	Ended     bool   // false when cut off at MaxDecisions
	Resource  string // resource that ended the reign
	Overflow  bool   // ended at the ceiling rather than the floor
}

// Stats summarizes a simulation.
type Stats struct {
	Reigns    []Reign
	Total     int // decisions across all reigns
	Mean      float64
	Median    float64
	Min       int
	Max       int
	CutOff    int
	Collapses map[string]int
	Overflows map[string]int
}

// Run plays opts.Reigns independent reigns. Results are deterministic for a
// non-zero seed regardless of the worker count.
func Run(ctx context.Context, opts Options) (*Stats, error) {
	if opts.Reigns <= 0 {
		return nil, fmt.Errorf("reigns must be positive, got %d", opts.Reigns)
	}
	if opts.Policy == nil {
		opts.Policy = Random
	}
	if opts.MaxDecisions <= 0 {
		opts.MaxDecisions = 1000
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	base := opts.Engine.Seed
	if base == 0 {
		base = rand.Int63()
	}

	reigns := make([]Reign, opts.Reigns)
	jobs := make(chan int)
	errs := make(chan error, opts.Workers)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := playReign(opts, base+int64(i))
				if err != nil {
					errs <- fmt.Errorf("reign %d: %w", i, err)
					return
				}
				r.Index = i
				reigns[i] = r
				if opts.OnReign != nil {
					opts.OnReign(r)
				}
			}
		}()
	}

	var err error
feed:
	for i := 0; i < opts.Reigns; i++ {
		select {
		case jobs <- i:
		case err = <-errs:
			break feed
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err == nil {
		select {
		case err = <-errs:
		default:
		}
	}
	if err != nil {
		return nil, err
	}
	return summarize(reigns), nil
}

func playReign(opts Options, seed int64) (Reign, error) {
	cfg := opts.Engine
	cfg.Seed = seed
	cfg.Logger = discard{}
	engine, err := game.NewEngine(cfg)
	if err != nil {
		return Reign{}, err
	}
	if err := engine.Start(); err != nil {
		return Reign{}, err
	}

	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	for engine.Decisions() < opts.MaxDecisions {
		card, err := engine.Current()
		if err != nil {
			return Reign{}, err
		}
		if err := engine.SubmitDecision(opts.Policy(card, engine.Snapshot(), rng)); err != nil {
			return Reign{}, err
		}
		if engine.Over() {
			break
		}
		if err := engine.TransitionComplete(); err != nil {
			return Reign{}, err
		}
	}

	r := Reign{Decisions: engine.Decisions()}
	for _, res := range engine.Snapshot() {
		if res.AtBoundary() {
			r.Ended = true
			r.Resource = res.Type.String()
			r.Overflow = res.Value >= res.Max
			break
		}
	}
	return r, nil
}

func summarize(reigns []Reign) *Stats {
	s := &Stats{
		Reigns:    reigns,
		Min:       math.MaxInt,
		Collapses: make(map[string]int),
		Overflows: make(map[string]int),
	}
	lengths := make([]int, len(reigns))
	for i, r := range reigns {
		lengths[i] = r.Decisions
		s.Total += r.Decisions
		s.Min = min(s.Min, r.Decisions)
		s.Max = max(s.Max, r.Decisions)
		switch {
		case !r.Ended:
			s.CutOff++
		case r.Overflow:
			s.Overflows[r.Resource]++
		default:
			s.Collapses[r.Resource]++
		}
	}
	s.Mean = float64(s.Total) / float64(len(reigns))

	sort.Ints(lengths)
	n := len(lengths)
	if n%2 == 1 {
		s.Median = float64(lengths[n/2])
	} else {
		s.Median = float64(lengths[n/2-1]+lengths[n/2]) / 2
	}
	return s
}

// String renders a human-readable report.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Reigns:     %s\n", humanize.Comma(int64(len(s.Reigns))))
	fmt.Fprintf(&sb, "Decisions:  %s total\n", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(&sb, "Length:     mean %s, median %s, min %d, max %d\n",
		humanize.FormatFloat("#,###.##", s.Mean), humanize.FormatFloat("#,###.#", s.Median), s.Min, s.Max)
	if s.CutOff > 0 {
		fmt.Fprintf(&sb, "Cut off:    %s\n", humanize.Comma(int64(s.CutOff)))
	}
	sb.WriteString("Endings:\n")
	for _, rt := range game.AllResources {
		name := rt.String()
		c, o := s.Collapses[name], s.Overflows[name]
		fmt.Fprintf(&sb, "  %-12s collapsed %6s (%5.1f%%)  overflowed %6s (%5.1f%%)\n",
			name, humanize.Comma(int64(c)), s.percent(c), humanize.Comma(int64(o)), s.percent(o))
	}
	return sb.String()
}

func (s *Stats) percent(n int) float64 {
	if len(s.Reigns) == 0 {
		return 0
	}
	return 100 * float64(n) / float64(len(s.Reigns))
}
