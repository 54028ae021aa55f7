// Package services holds the client use cases: keeping the profile and its
// streak up to date, recording activities and syncing with the remote
// service.
//
// ProgressService owns the only in-memory copy of the profile. Every change
// to it goes through ProgressService.Update, which serializes callers and
// runs the change together with any activity insert in one SQLite
// transaction, so a crash can never leave an activity without its streak
// update or the other way round.
package services
