package encoding

import "strings"

// Flags are cache-operation modifiers sent with entry requests.
type Flags string

// Cache operation flags.
const (
	FlagCacheModeLocal             Flags = "CACHE_MODE_LOCAL"
	FlagFailSilently               Flags = "FAIL_SILENTLY"
	FlagForceAsynchronous          Flags = "FORCE_ASYNCHRONOUS"
	FlagForceSynchronous           Flags = "FORCE_SYNCHRONOUS"
	FlagForceWriteLock             Flags = "FORCE_WRITE_LOCK"
	FlagIgnoreReturnValues         Flags = "IGNORE_RETURN_VALUES"
	FlagIgnoreTransaction          Flags = "IGNORE_TRANSACTION"
	FlagPutForExternalRead         Flags = "PUT_FOR_EXTERNAL_READ"
	FlagRemoteIteration            Flags = "REMOTE_ITERATION"
	FlagSkipCacheLoad              Flags = "SKIP_CACHE_LOAD"
	FlagSkipCacheStore             Flags = "SKIP_CACHE_STORE"
	FlagSkipIndexCleanup           Flags = "SKIP_INDEX_CLEANUP"
	FlagSkipIndexing               Flags = "SKIP_INDEXING"
	FlagSkipListenerNotification   Flags = "SKIP_LISTENER_NOTIFICATION"
	FlagSkipLocking                Flags = "SKIP_LOCKING"
	FlagSkipOwnershipCheck         Flags = "SKIP_OWNERSHIP_CHECK"
	FlagSkipRemoteLookup           Flags = "SKIP_REMOTE_LOOKUP"
	FlagSkipSharedCacheStore       Flags = "SKIP_SHARED_CACHE_STORE"
	FlagSkipSizeOptimization       Flags = "SKIP_SIZE_OPTIMIZATION"
	FlagSkipStatistics             Flags = "SKIP_STATISTICS"
	FlagSkipXSiteBackup            Flags = "SKIP_XSITE_BACKUP"
	FlagZeroLockAcquisitionTimeout Flags = "ZERO_LOCK_ACQUISITION_TIMEOUT"
)

var allFlags = []Flags{
	FlagCacheModeLocal,
	FlagFailSilently,
	FlagForceAsynchronous,
	FlagForceSynchronous,
	FlagForceWriteLock,
	FlagIgnoreReturnValues,
	FlagIgnoreTransaction,
	FlagPutForExternalRead,
	FlagRemoteIteration,
	FlagSkipCacheLoad,
	FlagSkipCacheStore,
	FlagSkipIndexCleanup,
	FlagSkipIndexing,
	FlagSkipListenerNotification,
	FlagSkipLocking,
	FlagSkipOwnershipCheck,
	FlagSkipRemoteLookup,
	FlagSkipSharedCacheStore,
	FlagSkipSizeOptimization,
	FlagSkipStatistics,
	FlagSkipXSiteBackup,
	FlagZeroLockAcquisitionTimeout,
}

// AllFlags returns every known flag.
func AllFlags() []Flags {
	out := make([]Flags, len(allFlags))
	copy(out, allFlags)
	return out
}

// Valid reports whether f is a known flag.
func (f Flags) Valid() bool {
	for _, known := range allFlags {
		if f == known {
			return true
		}
	}
	return false
}

// JoinFlags renders flags as the comma separated value of the flags header.
func JoinFlags(flags []Flags) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ",")
}
