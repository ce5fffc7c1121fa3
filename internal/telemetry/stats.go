// Package telemetry records per-generation population statistics.
package telemetry

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"gol-canvas/internal/core"
)

// GenerationStats describes one step of the simulation.
type GenerationStats struct {
	Generation uint64  `csv:"generation"`
	Population int     `csv:"population"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	Density    float64 `csv:"density"`
}

// Compare counts births and deaths between two generations of equal size.
func Compare(prev, next *core.Grid) GenerationStats {
	s := GenerationStats{Generation: next.Generation()}
	for col := 0; col < next.Columns(); col++ {
		for row := 0; row < next.Rows(); row++ {
			was, is := prev.Alive(col, row), next.Alive(col, row)
			switch {
			case is && !was:
				s.Births++
			case was && !is:
				s.Deaths++
			}
			if is {
				s.Population++
			}
		}
	}
	if total := next.Columns() * next.Rows(); total > 0 {
		s.Density = float64(s.Population) / float64(total)
	}
	return s
}

// Summary aggregates the recorded populations.
type Summary struct {
	Generations int
	Mean        float64
	StdDev      float64
	Min         float64
	Median      float64
	Max         float64
	Births      int
	Deaths      int
}

// Recorder accumulates GenerationStats.
type Recorder struct {
	records []GenerationStats
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Record appends s.
func (r *Recorder) Record(s GenerationStats) { r.records = append(r.records, s) }

// Observe compares prev and next and records the result.
func (r *Recorder) Observe(prev, next *core.Grid) GenerationStats {
	s := Compare(prev, next)
	r.Record(s)
	return s
}

// Len reports how many generations were recorded.
func (r *Recorder) Len() int { return len(r.records) }

// Last returns the most recent record.
func (r *Recorder) Last() (GenerationStats, bool) {
	if len(r.records) == 0 {
		return GenerationStats{}, false
	}
	return r.records[len(r.records)-1], true
}

// Records returns a copy of the recorded stats.
func (r *Recorder) Records() []GenerationStats { return slices.Clone(r.records) }

// Reset drops every record.
func (r *Recorder) Reset() { r.records = r.records[:0] }

// Summary computes population statistics over every record.
func (r *Recorder) Summary() Summary {
	sum := Summary{Generations: len(r.records)}
	if len(r.records) == 0 {
		return sum
	}
	pop := make([]float64, len(r.records))
	for i, rec := range r.records {
		pop[i] = float64(rec.Population)
		sum.Births += rec.Births
		sum.Deaths += rec.Deaths
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(pop, nil)
	if math.IsNaN(sum.StdDev) {
		sum.StdDev = 0
	}
	slices.Sort(pop)
	sum.Min = pop[0]
	sum.Max = pop[len(pop)-1]
	sum.Median = stat.Quantile(0.5, stat.Empirical, pop, nil)
	return sum
}
