// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// AsyncAPI 3 reference prefixes
const (
	RefPrefixChannels          = "#/channels/"
	RefPrefixOperations        = "#/operations/"
	RefPrefixComponentMessages = "#/components/messages/"
	RefPrefixComponentSchemas  = "#/components/schemas/"
)

const messagesSegment = "/messages/"

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointer escapes a single JSON Pointer reference token.
func EscapePointer(token string) string {
	return pointerEscaper.Replace(token)
}

// UnescapePointer reverses EscapePointer.
func UnescapePointer(token string) string {
	return pointerUnescaper.Replace(token)
}

// ChannelRef builds "#/channels/{name}".
func ChannelRef(name string) string {
	return RefPrefixChannels + EscapePointer(name)
}

// OperationRef builds "#/operations/{name}".
func OperationRef(name string) string {
	return RefPrefixOperations + EscapePointer(name)
}

// ChannelMessageRef builds "#/channels/{channel}/messages/{message}".
func ChannelMessageRef(channel, message string) string {
	return ChannelRef(channel) + messagesSegment + EscapePointer(message)
}

// ComponentMessageRef builds "#/components/messages/{name}".
func ComponentMessageRef(name string) string {
	return RefPrefixComponentMessages + EscapePointer(name)
}

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixComponentSchemas + EscapePointer(name)
}

// ChannelName extracts the unescaped channel name from "#/channels/{name}".
// ok is false for any other reference shape.
func ChannelName(ref string) (name string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixChannels)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return UnescapePointer(rest), true
}

// SplitChannelMessageRef extracts the unescaped channel and message names
// from "#/channels/{channel}/messages/{message}".
// ok is false for any other reference shape.
func SplitChannelMessageRef(ref string) (channel, message string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixChannels)
	if !found {
		return "", "", false
	}
	ch, msg, found := strings.Cut(rest, messagesSegment)
	if !found || ch == "" || msg == "" || strings.Contains(ch, "/") || strings.Contains(msg, "/") {
		return "", "", false
	}
	return UnescapePointer(ch), UnescapePointer(msg), true
}

// ComponentMessageName extracts the unescaped name from "#/components/messages/{name}".
func ComponentMessageName(ref string) (name string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixComponentMessages)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return UnescapePointer(rest), true
}
