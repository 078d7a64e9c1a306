package models

import (
	"math"
	"time"
)

// SchedulerOutput is the aggregate produced by the scheduler simulation and
// consumed by the renderer. The renderer never mutates it.
type SchedulerOutput struct {
	GanttData     []TimeSlice       `json:"ganttData"`
	FrequencyData []FrequencySample `json:"frequencyData"`
	EnergyData    []EnergySample    `json:"energyData"`
}

// TimeSlice is one scheduled execution segment of a process.
type TimeSlice struct {
	PID       int     `json:"pid"`
	Start     float64 `json:"start"`     // ms
	Duration  float64 `json:"duration"`  // ms
	Frequency float64 `json:"frequency"` // GHz
}

// End returns the time at which the slice finishes.
func (ts TimeSlice) End() float64 {
	return ts.Start + ts.Duration
}

// Valid reports whether the slice can be drawn.
func (ts TimeSlice) Valid() bool {
	return finiteNonNegative(ts.Start, ts.Frequency) && isFinite(ts.Duration) && ts.Duration > 0
}

// FrequencySample is one observed operating frequency, one per scheduling event.
type FrequencySample struct {
	Frequency float64 `json:"frequency"` // GHz
}

func (fs FrequencySample) Valid() bool {
	return finiteNonNegative(fs.Frequency)
}

// EnergySample is the energy reading at a point in simulated time.
type EnergySample struct {
	Time   float64 `json:"time"`   // ms
	Energy float64 `json:"energy"` // units
}

func (es EnergySample) Valid() bool {
	return finiteNonNegative(es.Time, es.Energy)
}

// ReportMetadata describes a single rendering run.
type ReportMetadata struct {
	Version     string    `json:"version"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"`
	Backend     string    `json:"backend"`
}

// ValidTimeSlices returns the drawable slices in their original order and the
// number of records that were skipped.
func ValidTimeSlices(data []TimeSlice) ([]TimeSlice, int) {
	out := make([]TimeSlice, 0, len(data))
	for _, d := range data {
		if d.Valid() {
			out = append(out, d)
		}
	}
	return out, len(data) - len(out)
}

// Frequencies extracts the valid frequency values.
func Frequencies(data []FrequencySample) ([]float64, int) {
	out := make([]float64, 0, len(data))
	for _, d := range data {
		if d.Valid() {
			out = append(out, d.Frequency)
		}
	}
	return out, len(data) - len(out)
}

// ValidEnergySamples returns the drawable samples in their original order and
// the number of records that were skipped.
func ValidEnergySamples(data []EnergySample) ([]EnergySample, int) {
	out := make([]EnergySample, 0, len(data))
	for _, d := range data {
		if d.Valid() {
			out = append(out, d)
		}
	}
	return out, len(data) - len(out)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteNonNegative(vs ...float64) bool {
	for _, v := range vs {
		if !isFinite(v) || v < 0 {
			return false
		}
	}
	return true
}
