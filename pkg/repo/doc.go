// Package repo models the on-disk layout of a configma repository.
//
// The repository root holds one directory per profile. Inside a profile,
// the tree mirrors the home directory: a regular file is a tracked file,
// and a directory containing the stub sentinel (.configma.stub) is tracked
// as a whole. Directories without the sentinel are plain structure and are
// descended into.
//
// Everything here is read fresh from the filesystem on each call; there is
// no index. When stub directories nest, the outermost one wins: the walk
// never descends into a stub directory, so inner sentinels are inert.
// FindNestedStubs reports them so callers can warn.
package repo
