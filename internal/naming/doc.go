// Package naming provides shared naming utilities for asynctools packages.
//
// The scanner package uses these helpers to derive default names for the
// entities it discovers: message names from payload type names, human-readable
// message titles, and operation identifiers of the form
// "<channel>_<action>_<method>".
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
