package models

import "time"

// Activity is one synced log line. Payload is the client's JSON document,
// stored as is.
type Activity struct {
	ID        string
	UserID    string
	Kind      string
	Day       string
	Payload   []byte
	CreatedAt time.Time
}

// KindJournal marks journal entries, the only kind included in exports.
const KindJournal = "journal"

// ValidKinds lists the activity kinds the service stores.
var ValidKinds = map[string]bool{
	KindJournal: true,
	"challenge": true,
	"task":      true,
	"mood":      true,
	"sleep":     true,
	"water":     true,
	"exercise":  true,
}

// JournalExport is the document uploaded to object storage.
type JournalExport struct {
	UserID     string          `json:"userId"`
	ExportedAt time.Time       `json:"exportedAt"`
	Entries    []ExportedEntry `json:"entries"`
}

type ExportedEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Mood      int       `json:"mood,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportResult tells the caller where an export was written.
type ExportResult struct {
	Key     string
	URL     string
	Entries int
}
