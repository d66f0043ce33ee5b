// Package profiles creates, switches and lists profiles.
//
// Switching unlinks the old profile's symlinks, records the new profile in
// the active-profile marker and syncs it.
package profiles
