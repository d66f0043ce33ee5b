// Package track implements add and remove: moving a real path into a
// profile and linking it back, and the reverse.
//
// Both operations work on one entry at a time and abort on the first
// error. Each mutation is undone if a later step of the same entry fails,
// so the system path always ends up either fully tracked or exactly as it
// was.
package track
