// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil builds and splits the JSON Pointer references used inside
// AsyncAPI 3 documents, and sanitizes output file paths.
//
// # Reference Builders
//
// Channel and message names are escaped per RFC 6901 ("~" -> "~0",
// "/" -> "~1") so that names such as "orders/created" stay a single
// pointer segment:
//
//	ref := pathutil.ChannelRef("orders/created")                // "#/channels/orders~1created"
//	ref := pathutil.ChannelMessageRef("orders", "OrderCreated") // "#/channels/orders/messages/OrderCreated"
//	ref := pathutil.ComponentMessageRef("OrderCreated")         // "#/components/messages/OrderCreated"
//
// [SplitChannelMessageRef] reverses [ChannelMessageRef]; the assembler uses
// it to check that an operation's message references resolve.
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths. It rejects
// symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
