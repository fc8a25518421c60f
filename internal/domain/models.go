// Package domain defines the persisted data model for the message board.
// The whole board is a single JSON document on disk: an array of Message
// values in append order. There is no relational mapping; the store rewrites
// the full array on every mutation.
package domain

import "time"

// TimestampLayout is the wire and file format for message timestamps:
// ISO-8601 / RFC 3339 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Message is the only persisted entity.
//
// Fields:
//   - ID: unique, assigned at creation. A millisecond-epoch string, so IDs
//     sort by insertion order even when display timestamps collide.
//   - Text: message body, never empty or whitespace-only once stored.
//   - Timestamp: creation time in TimestampLayout, set server-side.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// CreatedAt parses the message timestamp. A zero time is returned for
// unparseable values, which sorts such messages as "older than everything"
// and makes them eligible for expiry sweeps.
func (m Message) CreatedAt() time.Time {
	t, err := time.Parse(TimestampLayout, m.Timestamp)
	if err != nil {
		// Older files may carry second-precision stamps.
		t, err = time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			return time.Time{}
		}
	}
	return t.UTC()
}

// FormatTimestamp renders t in the canonical persisted layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
