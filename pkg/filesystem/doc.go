// Package filesystem provides filesystem implementations for configma.
//
// NewOS is the OS-backed implementation of the types.FS interface. NewAferoFS
// adapts an afero filesystem, mostly for in-memory tests of code that only
// reads the repository. Everything that touches the disk goes through
// types.FS so the sync engine, the repository walker and the add/remove
// operations share one seam.
package filesystem
