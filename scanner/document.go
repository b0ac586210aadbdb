package scanner

import (
	"context"
	"fmt"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/merger"
)

// DocumentScanner emits the entries of partial description files, in file
// order and then document order.
type DocumentScanner struct {
	name     string
	protocol string
	paths    []string
	// Logger receives diagnostic output. Nil means no logging.
	Logger asyncapi.Logger
}

// NewDocumentScanner creates a scanner over the given partial description files.
func NewDocumentScanner(name, protocol string, paths ...string) *DocumentScanner {
	return &DocumentScanner{name: name, protocol: protocol, paths: paths}
}

// Name implements Scanner.
func (s *DocumentScanner) Name() string { return s.name }

// Protocol implements Scanner.
func (s *DocumentScanner) Protocol() string { return s.protocol }

// Scan implements Scanner.
func (s *DocumentScanner) Scan(ctx context.Context) (*merger.Source, error) {
	src := &merger.Source{Name: s.name}
	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pr, err := asyncapi.ParseWithOptions(
			asyncapi.WithFilePath(path),
			asyncapi.WithLogger(s.Logger),
		)
		if err != nil {
			return nil, &asyncerrors.ScanError{
				Scanner:  s.name,
				Protocol: s.protocol,
				Message:  fmt.Sprintf("failed to read %s", path),
				Cause:    err,
			}
		}
		src.Channels = append(src.Channels, pr.Channels...)
		src.Operations = append(src.Operations, pr.Operations...)
	}
	asyncapi.LoggerOrNop(s.Logger).Debug("scanned documents",
		"scanner", s.name,
		"files", len(s.paths),
		"channels", len(src.Channels),
		"operations", len(src.Operations),
	)
	return src, nil
}

var _ Scanner = (*DocumentScanner)(nil)
