package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/litescript/daylight/internal/logging"
)

// Chain tries providers in order and returns the first place found.
type Chain struct {
	providers []Provider
	log       *logging.Logger
}

// NewChain creates a chain over providers. A nil logger discards output.
func NewChain(log *logging.Logger, providers ...Provider) *Chain {
	if log == nil {
		log = logging.Discard()
	}
	return &Chain{providers: providers, log: log}
}

// Name implements Provider.
func (c *Chain) Name() string { return "chain" }

// Len returns the number of providers in the chain.
func (c *Chain) Len() int { return len(c.providers) }

// Locate implements Provider. Context cancellation stops the chain.
func (c *Chain) Locate(ctx context.Context) (Place, error) {
	var errs []error
	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			return Place{}, err
		}

		place, err := p.Locate(ctx)
		if err == nil {
			c.log.Debug("resolved %s via %s", place, p.Name())
			return place, nil
		}

		c.log.Debug("%s: %v", p.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	if len(errs) == 0 {
		return Place{}, ErrNoProvider
	}
	return Place{}, fmt.Errorf("%w: %w", ErrNoProvider, errors.Join(errs...))
}
