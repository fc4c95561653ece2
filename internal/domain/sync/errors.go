package sync

import "errors"

// ErrSyncFailed means a drain left entries pending. The entries stay queued
// and are retried on the next drain.
var ErrSyncFailed = errors.New("failed to sync record upstream")
