// Package persistence provides runtime state persistence for HAP accessory
// trees.
//
// This package handles the JSON serialization of state that must survive
// restarts: the identifier assignments that keep AIDs and IIDs stable across
// publishes, and bridge snapshots used to detect configuration changes.
// Change history is handled separately by the history package's SQLite
// store.
package persistence
