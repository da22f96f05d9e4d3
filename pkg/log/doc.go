// Package log provides structured event logging for HAP accessory trees.
//
// This package defines the Logger interface and Event types for capturing
// what happens inside a published tree: characteristic changes, layout
// changes, identify routines and errors. It is separate from operational
// logging (slog) - event capture provides a complete machine-readable trace
// for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation and
// attaching an AccessoryObserver to the tree root:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/hap/bridge.hlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
//	bridge.Subscribe(log.NewAccessoryObserver(logger))
//
// # Event Types
//
// Events mirror the accessory event hierarchy:
//   - Change: committed characteristic value changes (ChangeEventData)
//   - Config: services, characteristics or children added or removed
//     (ConfigEventData)
//   - Identify: completed identify routines
//   - Error: failures while processing events (ErrorEventData)
//
// # File Format
//
// Log files use CBOR encoding with .hlog extension. The hap-log CLI tool
// provides viewing, filtering, and export capabilities.
package log
