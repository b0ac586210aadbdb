// Package fileutil holds file permission modes shared by writers.
package fileutil

import "os"

// OwnerReadWrite is the permission mode for written AsyncAPI documents,
// which may describe internal topology (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
