// Package sweep runs a scenario across a grid of values for one
// parameter, one independent simulation per value.
package sweep

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
	"github.com/san-kum/actinfriction/internal/experiment"
)

// Point is the outcome of one simulation in the grid.
type Point struct {
	Value   float64
	Final   dynamo.State
	Time    float64
	Metrics map[string]float64
	Err     error
}

type Sweep struct {
	Param   string
	Values  []float64
	Workers int
}

func New(param string, values []float64) *Sweep {
	return &Sweep{
		Param:   param,
		Values:  values,
		Workers: runtime.NumCPU(),
	}
}

// Run simulates base once per value, in Workers parallel goroutines. The
// returned points follow the order of Values. Per-run failures land in
// Point.Err; Run itself only fails when a config cannot be built.
func (s *Sweep) Run(ctx context.Context, base *config.Config) ([]Point, error) {
	points := make([]Point, len(s.Values))

	// Build all configs up front so a bad parameter name fails fast.
	cfgs := make([]*config.Config, len(s.Values))
	for i, v := range s.Values {
		cfg, err := base.WithParam(s.Param, v)
		if err != nil {
			return nil, err
		}
		cfgs[i] = cfg
		points[i] = Point{Value: v}
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(s.Values) {
		workers = len(s.Values)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				points[i] = s.runOne(ctx, cfgs[i], s.Values[i])
			}
		}()
	}

	for i := range s.Values {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return points, nil
}

func (s *Sweep) runOne(ctx context.Context, cfg *config.Config, value float64) Point {
	pt := Point{Value: value}

	exp, err := experiment.New(cfg)
	if err != nil {
		pt.Err = err
		return pt
	}

	res, err := exp.Run(ctx)
	if err != nil {
		pt.Err = err
		return pt
	}
	if len(res.Errors) > 0 {
		pt.Err = res.Errors[len(res.Errors)-1]
	}

	last := len(res.States) - 1
	pt.Final = res.States[last].Clone()
	pt.Time = res.Times[last]
	pt.Metrics = res.Metrics
	return pt
}
