package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization of the next letter.
// Example: "order_created" -> "OrderCreated"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if isSeparator(r) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SimpleTypeName strips package qualifiers, pointer markers and type
// arguments from a Go or Java style type name.
// Example: "*events.OrderCreated" -> "OrderCreated"
// Example: "com.example.Envelope[com.example.Order]" -> "Envelope"
func SimpleTypeName(qualified string) string {
	name := strings.TrimSpace(qualified)
	name = strings.TrimLeft(name, "*[]")
	if i := strings.IndexAny(name, "[<"); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexAny(name, "./"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// SplitWords splits an identifier into words at case changes and separators.
// Runs of capitals stay together: "HTTPRequestSent" -> ["HTTP", "Request", "Sent"].
func SplitWords(s string) []string {
	runes := []rune(s)
	var words []string
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		case unicode.IsDigit(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

// HumanTitle turns an identifier into a space separated title.
// Acronyms are kept as written.
// Example: "order_created" -> "Order Created"
// Example: "HTTPRequestSent" -> "HTTP Request Sent"
func HumanTitle(s string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)
	words := SplitWords(s)
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// OperationName builds the default operation identifier for a discovered
// producer or consumer method.
// Example: ("orders", "send", "PublishOrder") -> "orders_send_PublishOrder"
func OperationName(channel, action, method string) string {
	return channel + "_" + action + "_" + method
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '/' || r == ' '
}
