// Package cli is the vitals command line: a cobra command tree over the
// client services.
//
// Every invocation opens the local database and runs the streak startup
// check before the command itself, so a streak that lapsed while the
// program was not running is reset before anything is shown or recorded.
//
// Commands
//
//	status                          streak, phase, level and rewards
//	history                         journal entries per day
//	journal add|list                write or list journal entries
//	challenge complete <id>         complete a challenge
//	task complete <id>              complete a task
//	log mood|sleep|water|exercise   record a non-streak log
//	summary                         totals of one day
//	name <display name>             set the leaderboard name
//	sync                            push pending data to the server
//	leaderboard                     shared streak ranking
//	export                          export the journal, print a download link
package cli
