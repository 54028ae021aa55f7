// Package client talks to the VitalKeeper remote data service.
//
// # Overview
//
// Client is the transport-agnostic contract used by the sync service:
// Ping, PushActivities, PushProfile, Leaderboard and ExportJournal.
// GRPCClient implements it over gRPC with the JSON codec from package api.
// Every call carries the configured access token in the "access_token"
// metadata key.
//
// # Error Handling
//
// gRPC status codes are mapped to sentinel errors that callers match with
// errors.Is: ErrUnavailable when the server cannot be reached or timed out,
// ErrUnauthorized when the token is missing, expired or rejected. Other
// failures are returned wrapped as "rpc error: ...".
//
// The local-first client keeps working when the server is unavailable;
// pending activities simply stay pending until the next successful sync.
package client
