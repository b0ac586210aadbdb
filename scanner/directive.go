package scanner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-shellwords"

	"github.com/erraggy/asynctools/asyncapi"
)

// DirectivePrefix starts an operation directive comment.
const DirectivePrefix = "//asyncapi:operation"

// Directive is a parsed //asyncapi:operation comment.
type Directive struct {
	Channel     string
	Action      asyncapi.Action
	Message     string
	Protocol    string
	Description string
	Operation   string
}

// ParseDirective parses the text of a directive comment, including its prefix.
// ok is false when text is not a directive at all.
func ParseDirective(text string) (d Directive, ok bool, err error) {
	rest, found := strings.CutPrefix(text, DirectivePrefix)
	if !found {
		return Directive{}, false, nil
	}
	if rest != "" && !unicode.IsSpace(rune(rest[0])) {
		return Directive{}, false, nil
	}

	fields, err := splitFields(rest)
	if err != nil {
		return Directive{}, true, err
	}
	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found || value == "" {
			return Directive{}, true, fmt.Errorf("expected key=value, got %q", field)
		}
		switch key {
		case "channel":
			d.Channel = value
		case "action":
			d.Action = asyncapi.Action(value)
		case "message":
			d.Message = value
		case "protocol":
			d.Protocol = strings.ToLower(value)
		case "description":
			d.Description = value
		case "operation":
			d.Operation = value
		default:
			return Directive{}, true, fmt.Errorf("unknown key %q", key)
		}
	}

	switch {
	case d.Channel == "":
		return Directive{}, true, fmt.Errorf("missing channel")
	case d.Message == "":
		return Directive{}, true, fmt.Errorf("missing message")
	case !d.Action.IsValid():
		return Directive{}, true, fmt.Errorf("action must be send or receive, got %q", d.Action)
	}
	return d, true, nil
}

// splitFields splits s into shell-style words. Quoted values keep their
// spaces and lose their quotes.
func splitFields(s string) ([]string, error) {
	p := shellwords.NewParser()
	fields, err := p.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("unterminated quote or escape: %w", err)
	}
	// The parser stops at unquoted shell operators such as ';' or '|'.
	// Position counts runes.
	if p.Position >= 0 {
		return nil, fmt.Errorf("unexpected %q, quote values containing shell operators", []rune(s)[p.Position])
	}
	return fields, nil
}
