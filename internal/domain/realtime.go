package domain

import "context"

// ChangeType is the kind of row change announced on the change stream.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent describes one row change on one table. Row carries the
// JSON-serializable row payload; for deletes it may hold only the keys.
type ChangeEvent struct {
	Table      string     `json:"table"`
	ChangeType ChangeType `json:"change_type"`
	Row        any        `json:"row"`
}

// ChangePublisher fans row changes out to subscribed clients. Publishing is
// best-effort: services log failures but never fail the write because of them.
// The availability matcher does not consume this stream; it recomputes from
// fresh snapshots on demand.
type ChangePublisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
}
