package errs

import "errors"

// ErrOptimisticLock means the record was modified by another operation
// between read and write. Callers should reload and decide whether to retry.
var ErrOptimisticLock = errors.New("record was modified by a concurrent operation")
