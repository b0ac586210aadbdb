package scanner

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/merger"
)

// Scanner discovers the channels and operations of one messaging technology.
type Scanner interface {
	// Name identifies the scanner in warnings and errors.
	Name() string
	// Protocol is the messaging protocol the scanner covers (e.g. "kafka"),
	// or "" when it is protocol neutral.
	Protocol() string
	// Scan returns the discovered entries in a stable order.
	Scan(ctx context.Context) (*merger.Source, error)
}

// Run executes scanners concurrently and returns their sources in the
// order the scanners were given. The first failure cancels the remaining
// scans; the returned error is then an *asyncerrors.ScanError.
func Run(ctx context.Context, scanners ...Scanner) ([]merger.Source, error) {
	sources := make([]merger.Source, len(scanners))
	g, gctx := errgroup.WithContext(ctx)

	for i, s := range scanners {
		g.Go(func() error {
			src, err := s.Scan(gctx)
			if err != nil {
				return asScanError(s, err)
			}
			if src == nil {
				src = &merger.Source{}
			}
			if src.Name == "" {
				src.Name = s.Name()
			}
			sources[i] = *src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

func asScanError(s Scanner, err error) error {
	var scanErr *asyncerrors.ScanError
	if errors.As(err, &scanErr) {
		return err
	}
	return &asyncerrors.ScanError{
		Scanner:  s.Name(),
		Protocol: s.Protocol(),
		Message:  "scan failed",
		Cause:    err,
	}
}
