// Package commands implements the hap-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category  *log.Category
	Accessory string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] CATEGORY accessory (aid)
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnID)
	if connID == "" {
		connID = "-"
	}

	accessory := event.Accessory
	if accessory == "" {
		accessory = model.ShortUUID(event.AccessoryUUID)
	}

	fmt.Fprintf(w, "%s [conn:%s] %-8s %s", ts, connID, event.Category.String(), accessory)
	if event.AID != 0 {
		fmt.Fprintf(w, " (aid %d)", event.AID)
	}
	fmt.Fprintln(w)

	switch {
	case event.Change != nil:
		formatChangeDetails(w, event.Change)
	case event.Config != nil:
		formatConfigDetails(w, event.Config)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatChangeDetails writes characteristic change details.
func formatChangeDetails(w io.Writer, change *log.ChangeEventData) {
	service := change.ServiceName
	if service == "" {
		service = model.ShortUUID(change.ServiceType)
	}
	if change.Subtype != "" {
		service += " [" + change.Subtype + "]"
	}

	characteristic := change.CharacteristicName
	if characteristic == "" {
		characteristic = model.ShortUUID(change.CharacteristicType)
	}

	fmt.Fprintf(w, "  %s/%s", service, characteristic)
	if change.IID != 0 {
		fmt.Fprintf(w, " (iid %d)", change.IID)
	}
	fmt.Fprintf(w, ": %v -> %v\n", change.OldValue, change.NewValue)
}

// formatConfigDetails writes configuration change details.
func formatConfigDetails(w io.Writer, config *log.ConfigEventData) {
	if config.ServiceName != "" || config.ServiceType != "" {
		service := config.ServiceName
		if service == "" {
			service = model.ShortUUID(config.ServiceType)
		}
		fmt.Fprintf(w, "  Service: %s\n", service)
	}
	if config.Signature != "" {
		fmt.Fprintf(w, "  Signature: %s\n", shortenSignature(config.Signature))
	}
}

// shortenSignature returns the first 16 characters of a config signature.
func shortenSignature(sig string) string {
	if len(sig) > 16 {
		return sig[:16]
	}
	return sig
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, errData *log.ErrorEventData) {
	if errData.Op != "" {
		fmt.Fprintf(w, "  Op: %s\n", errData.Op)
	}
	fmt.Fprintf(w, "  Message: %s\n", errData.Message)
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "change":
		return log.CategoryChange, nil
	case "config":
		return log.CategoryConfig, nil
	case "identify":
		return log.CategoryIdentify, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be change, config, identify, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}
		if filter.Accessory != "" && event.Accessory != filter.Accessory {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
