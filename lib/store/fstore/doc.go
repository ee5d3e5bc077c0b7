// Package fstore provides the durable configuration backend: all keys of a
// store live in one JSON object in a single file.
//
// Architecture:
//
//  1. Lazy initialization: the first operation creates the file (and its parent
//     directories) or loads it. Concurrent first callers share one load through a
//     singleflight group; a failed load is retried by the next call.
//  2. In-memory mirror: reads are served from a map guarded by a RWMutex and
//     never touch the disk.
//  3. Write queue: every Set or Delete updates the mirror and enqueues a
//     persistence job while still holding the write lock, so jobs run in the
//     order the changes were made. A single writer goroutine drains the queue.
//  4. Atomic replace: a job snapshots the mirror, writes it to a uniquely named
//     temp file next to the target ("<path>.tmp.<ulid>"), syncs it and renames it
//     over the target. Readers of the file see either the old or the new content.
//
// Persistence failures are logged, counted and passed to Options.OnWriteError.
// They never fail the Set or Delete that caused them; the in-memory state stays
// authoritative and the next successful job writes it out.
//
// Metrics (VictoriaMetrics, labelled with the file path):
//
//	dconf_fstore_writes_total
//	dconf_fstore_write_errors_total
//	dconf_fstore_write_duration_seconds
//	dconf_fstore_file_size_bytes
package fstore
