package fileutil

import "os"

// OwnerReadWrite is the file permission mode for rendered report output
// files, which may contain sensitive lineage data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600
