package astro

import (
	"math"
	"time"
)

// ElevationSample is the Sun's elevation at one instant.
type ElevationSample struct {
	Time      time.Time
	Elevation float64 // degrees above horizon
}

// Trace holds elevation samples of the Sun over one UTC day.
type Trace struct {
	Observer Observer
	Start    time.Time
	End      time.Time
	Step     time.Duration
	Samples  []ElevationSample
}

// DefaultTraceStep is the sample spacing used by the UI sparkline.
const DefaultTraceStep = 10 * time.Minute

// Crossing is an interpolated passage of the Sun through an elevation.
type Crossing struct {
	Time   time.Time
	Rising bool
}

// ElevationTrace samples the Sun's elevation over the UTC day containing
// day, from midnight to the next midnight inclusive. A non-positive step
// uses DefaultTraceStep.
func ElevationTrace(day time.Time, obs Observer, step time.Duration) *Trace {
	if step <= 0 {
		step = DefaultTraceStep
	}

	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	n := int(end.Sub(start)/step) + 1
	samples := make([]ElevationSample, 0, n)
	for t := start; !t.After(end); t = t.Add(step) {
		samples = append(samples, ElevationSample{
			Time:      t,
			Elevation: SunElevation(t, obs),
		})
	}

	return &Trace{
		Observer: obs,
		Start:    start,
		End:      end,
		Step:     step,
		Samples:  samples,
	}
}

// At returns the sample closest to t, or nil if the trace is empty.
func (tr *Trace) At(t time.Time) *ElevationSample {
	if len(tr.Samples) == 0 {
		return nil
	}

	var closest *ElevationSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range tr.Samples {
		delta := tr.Samples[i].Time.Sub(t)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &tr.Samples[i]
		}
	}

	return closest
}

// Range returns the lowest and highest sampled elevations.
func (tr *Trace) Range() (minEl, maxEl float64) {
	if len(tr.Samples) == 0 {
		return 0, 0
	}
	minEl, maxEl = 90.0, -90.0
	for _, s := range tr.Samples {
		minEl = math.Min(minEl, s.Elevation)
		maxEl = math.Max(maxEl, s.Elevation)
	}
	return minEl, maxEl
}

// Crossings returns every passage through threshold in time order.
func (tr *Trace) Crossings(threshold float64) []Crossing {
	var out []Crossing
	for i := 1; i < len(tr.Samples); i++ {
		prev := tr.Samples[i-1]
		curr := tr.Samples[i]

		switch {
		case prev.Elevation <= threshold && curr.Elevation > threshold:
			out = append(out, Crossing{
				Time:   interpolateCrossing(prev.Time, curr.Time, prev.Elevation, curr.Elevation, threshold),
				Rising: true,
			})
		case prev.Elevation > threshold && curr.Elevation <= threshold:
			out = append(out, Crossing{
				Time: interpolateCrossing(prev.Time, curr.Time, prev.Elevation, curr.Elevation, threshold),
			})
		}
	}
	return out
}

// Peak returns the time and elevation of the highest point of the trace,
// refined by parabolic interpolation around the best sample.
func (tr *Trace) Peak() (time.Time, float64) {
	if len(tr.Samples) == 0 {
		return time.Time{}, 0
	}

	maxIdx := 0
	for i, s := range tr.Samples {
		if s.Elevation > tr.Samples[maxIdx].Elevation {
			maxIdx = i
		}
	}

	if maxIdx == 0 || maxIdx == len(tr.Samples)-1 {
		s := tr.Samples[maxIdx]
		return s.Time, s.Elevation
	}

	return refineMax(tr.Samples[maxIdx-1], tr.Samples[maxIdx], tr.Samples[maxIdx+1])
}

// refineMax fits a parabola through three equally spaced samples.
func refineMax(prev, mid, next ElevationSample) (time.Time, float64) {
	// Normalized time: -1 (prev), 0 (mid), +1 (next)
	y0, y1, y2 := prev.Elevation, mid.Elevation, next.Elevation

	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	if a >= 0 {
		return mid.Time, mid.Elevation
	}

	tMax := clamp(-b/(2*a), -1, 1)

	dt := mid.Time.Sub(prev.Time)
	refined := mid.Time.Add(time.Duration(float64(dt) * tMax))

	return refined, a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	fraction := clamp((threshold-el1)/(el2-el1), 0, 1)

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}
