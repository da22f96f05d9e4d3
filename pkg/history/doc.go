// Package history persists characteristic value changes in a SQLite
// journal so applications can answer "what happened to this accessory"
// after the fact.
//
// The journal is append-only. Each committed change becomes one row
// carrying the accessory, service and characteristic identity alongside
// the old and new values (stored as JSON) and an RFC 3339 UTC timestamp.
// Queries return entries newest first and are capped at MaxLimit rows.
//
// Recorder adapts a Store to the model.Observer interface so a bridge or
// accessory can feed the journal directly:
//
//	store, err := history.Open(history.Config{Path: "data/changes.db"})
//	if err != nil { ... }
//	defer store.Close()
//
//	bridge.Subscribe(history.NewRecorder(store, logger))
//
// Old entries are removed with Prune, typically from a periodic task.
package history
