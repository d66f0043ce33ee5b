// Package types defines the data model shared across configma: the
// filesystem interface the engine operates through, tracked entries and
// their two kinds, the observed state of a system path, and the per-entry
// results collected into a SyncReport.
package types
