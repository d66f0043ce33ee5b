// Package syncer reconciles the system side with a profile's tracked
// entries.
//
// For every tracked entry the desired system state is a symlink whose
// target is the entry's absolute repo path. The engine inspects what is
// there and moves towards that state:
//
//	absent      create parent directories, then the symlink
//	linked      nothing to do
//	wrong-link  atomically replace the link (temp sibling + rename)
//	occupied    a conflict: left alone, or with force moved into a backup
//	            session and then linked
//
// Entries are processed one at a time, each to completion. A failure on
// one entry is recorded in the report and the run continues. Repo-side
// content is never modified.
package syncer
