package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/litescript/daylight/internal/location"
	"github.com/litescript/daylight/internal/logging"
)

// placeOptions are the location-related flags.
type placeOptions struct {
	lat, lon       float64
	latSet, lonSet bool
	place          string
	configPath     string
	geoIP          bool
	tz             string
}

// resolvePlace loads the places file and finds the place to report on.
// It also returns the places file path, or "" when there is none.
func resolvePlace(ctx context.Context, opts placeOptions, logger *logging.Logger) (location.Place, string, error) {
	if opts.latSet != opts.lonSet {
		return location.Place{}, "", errors.New("-lat and -lon must be given together")
	}

	cfg, path, err := loadPlaces(opts.configPath, logger)
	if err != nil {
		return location.Place{}, "", err
	}
	place, err := resolveWith(ctx, opts, cfg, logger)
	return place, path, err
}

// resolveWith finds the place in order: explicit coordinates, the named
// place from cfg, the environment, cfg's default place and finally geo-IP
// when enabled.
func resolveWith(ctx context.Context, opts placeOptions, cfg *location.Config, logger *logging.Logger) (location.Place, error) {
	if opts.place != "" && cfg == nil {
		return location.Place{}, fmt.Errorf("-place %q: no places file", opts.place)
	}

	chain := location.NewChain(logger.Named("location"), providers(opts, cfg, logger)...)
	place, err := chain.Locate(ctx)
	if err != nil {
		if !opts.geoIP && errors.Is(err, location.ErrNoProvider) {
			return location.Place{}, fmt.Errorf("%w (pass -lat/-lon, -place or -geoip)", err)
		}
		return location.Place{}, err
	}

	if opts.tz != "" {
		place.TimeZone = opts.tz
	}
	if err := place.Validate(); err != nil {
		return location.Place{}, err
	}
	return place, nil
}

func providers(opts placeOptions, cfg *location.Config, logger *logging.Logger) []location.Provider {
	var list []location.Provider
	if opts.latSet && opts.lonSet {
		list = append(list, location.Static{Place: location.Place{Latitude: opts.lat, Longitude: opts.lon}})
	}
	if opts.place != "" && cfg != nil {
		list = append(list, cfg.Provider(opts.place))
	}
	list = append(list, location.Env{Config: cfg})
	if cfg != nil && cfg.Default != "" {
		list = append(list, cfg.Provider(""))
	}
	if opts.geoIP {
		list = append(list, location.NewGeoIP(location.WithLogger(logger.Named("location.geoip"))))
	}
	return list
}

// loadPlaces reads the places file and returns it with its path. A
// missing file at the default path is not an error; a missing file that
// was asked for is.
func loadPlaces(path string, logger *logging.Logger) (*location.Config, string, error) {
	explicit := path != ""
	if !explicit {
		p, err := location.DefaultConfigPath()
		if err != nil {
			logger.Debug("No config directory: %v", err)
			return nil, "", nil
		}
		path = p
	}

	cfg, err := location.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No places file at %s", path)
			return nil, "", nil
		}
		return nil, "", err
	}
	logger.Debug("Loaded %d places from %s", len(cfg.Places), path)
	return cfg, path, nil
}
