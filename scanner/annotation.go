package scanner

import (
	"context"
	"fmt"
	"go/ast"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/asynctools/asyncapi"
	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/internal/naming"
	"github.com/erraggy/asynctools/internal/pathutil"
	"github.com/erraggy/asynctools/merger"
)

// AnnotationScanner reads //asyncapi:operation directives from Go source.
//
// Only directives whose protocol matches the scanner's protocol, or that
// name no protocol, are emitted. Each directive yields one channel entry
// carrying the message and one operation entry referencing it.
type AnnotationScanner struct {
	name     string
	protocol string
	dir      string
	patterns []string
	// Logger receives diagnostic output. Nil means no logging.
	Logger asyncapi.Logger
}

// NewAnnotationScanner creates a scanner loading patterns (default "./...")
// relative to dir.
func NewAnnotationScanner(name, protocol, dir string, patterns ...string) *AnnotationScanner {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return &AnnotationScanner{
		name:     name,
		protocol: strings.ToLower(protocol),
		dir:      dir,
		patterns: patterns,
	}
}

// Name implements Scanner.
func (s *AnnotationScanner) Name() string { return s.name }

// Protocol implements Scanner.
func (s *AnnotationScanner) Protocol() string { return s.protocol }

// Scan implements Scanner. Packages are visited in import path order and
// files in name order, so output is stable across runs.
func (s *AnnotationScanner) Scan(ctx context.Context) (*merger.Source, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     s.dir,
	}
	pkgs, err := packages.Load(cfg, s.patterns...)
	if err != nil {
		return nil, s.scanError("failed to load packages", err)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	src := &merger.Source{Name: s.name}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, s.scanError(fmt.Sprintf("package %s has errors", pkg.PkgPath), pkg.Errors[0])
		}
		files := append([]*ast.File(nil), pkg.Syntax...)
		sort.Slice(files, func(i, j int) bool {
			return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
		})
		for _, file := range files {
			if err := s.scanFile(pkg, file, src); err != nil {
				return nil, err
			}
		}
	}

	asyncapi.LoggerOrNop(s.Logger).Debug("scanned annotations",
		"scanner", s.name,
		"protocol", s.protocol,
		"packages", len(pkgs),
		"operations", len(src.Operations),
	)
	return src, nil
}

func (s *AnnotationScanner) scanFile(pkg *packages.Package, file *ast.File, src *merger.Source) error {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, c := range fn.Doc.List {
			d, isDirective, err := ParseDirective(c.Text)
			if !isDirective {
				continue
			}
			if err != nil {
				pos := pkg.Fset.Position(c.Pos())
				return s.scanError(fmt.Sprintf("%s: invalid directive on %s", pos, fn.Name.Name), err)
			}
			if d.Protocol != "" && d.Protocol != s.protocol {
				continue
			}
			channel, operation := s.entries(d, fn.Name.Name)
			src.Channels = append(src.Channels, channel)
			src.Operations = append(src.Operations, operation)
		}
	}
	return nil
}

func (s *AnnotationScanner) entries(d Directive, funcName string) (asyncapi.ChannelEntry, asyncapi.OperationEntry) {
	messageName := naming.SimpleTypeName(d.Message)
	message := &asyncapi.Message{
		Name:    messageName,
		Title:   naming.HumanTitle(messageName),
		Payload: map[string]any{"$ref": pathutil.SchemaRef(messageName)},
	}

	channel := &asyncapi.Channel{
		Name:     d.Channel,
		Address:  d.Channel,
		Messages: map[string]*asyncapi.Message{messageName: message},
		Bindings: s.bindings(),
	}

	opName := d.Operation
	if opName == "" {
		opName = naming.OperationName(d.Channel, string(d.Action), funcName)
	}
	operation := &asyncapi.Operation{
		Name:        opName,
		Action:      d.Action,
		Channel:     asyncapi.NewChannelReference(d.Channel),
		Description: d.Description,
		Messages:    []asyncapi.MessageReference{asyncapi.NewChannelMessageReference(d.Channel, messageName)},
		Bindings:    s.bindings(),
	}

	return asyncapi.ChannelEntry{Name: d.Channel, Channel: channel},
		asyncapi.OperationEntry{Name: opName, Operation: operation}
}

// bindings returns an empty binding object for the scanner's protocol.
func (s *AnnotationScanner) bindings() map[string]any {
	if s.protocol == "" {
		return nil
	}
	return map[string]any{s.protocol: map[string]any{}}
}

func (s *AnnotationScanner) scanError(msg string, cause error) error {
	return &asyncerrors.ScanError{
		Scanner:  s.name,
		Protocol: s.protocol,
		Message:  msg,
		Cause:    cause,
	}
}

var _ Scanner = (*AnnotationScanner)(nil)
