package daylight

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// CalculateRange calculates days consecutive dates starting with the date of
// start. Each day is evaluated at the time of day of start. Results are in
// date order.
func CalculateRange(ctx context.Context, start time.Time, days int, latitude, longitude float64) ([]Result, error) {
	if err := ValidateCoordinate(latitude, longitude); err != nil {
		return nil, err
	}
	if days <= 0 {
		return nil, nil
	}

	results := make([]Result, days)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	first := start.UTC()
	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = calculate(first.AddDate(0, 0, i), latitude, longitude)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
