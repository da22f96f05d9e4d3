package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Accessories      map[string]*AccessoryStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// AccessoryStats holds statistics for a single accessory.
type AccessoryStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Changes   int
	Name      string
	AID       uint64
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Accessories:      make(map[string]*AccessoryStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track per-accessory stats, keyed by UUID when present
		key := event.AccessoryUUID
		if key == "" {
			key = event.Accessory
		}
		if key != "" {
			acc, ok := stats.Accessories[key]
			if !ok {
				acc = &AccessoryStats{
					FirstSeen: event.Timestamp,
					LastSeen:  event.Timestamp,
				}
				stats.Accessories[key] = acc
			}
			acc.Events++
			if event.Timestamp.After(acc.LastSeen) {
				acc.LastSeen = event.Timestamp
			}
			if event.Accessory != "" && acc.Name == "" {
				acc.Name = event.Accessory
			}
			if event.AID != 0 && acc.AID == 0 {
				acc.AID = event.AID
			}
			if event.Change != nil {
				acc.Changes++
			}
		}

		// Count errors
		if event.Error != nil {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Accessory Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryChange, log.CategoryConfig, log.CategoryIdentify, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Accessories
	fmt.Fprintf(w, "Accessories: %d\n", len(stats.Accessories))
	if len(stats.Accessories) > 0 {
		// Sort by first seen time
		type accInfo struct {
			key   string
			stats *AccessoryStats
		}
		accs := make([]accInfo, 0, len(stats.Accessories))
		for key, as := range stats.Accessories {
			accs = append(accs, accInfo{key, as})
		}
		sort.Slice(accs, func(i, j int) bool {
			return accs[i].stats.FirstSeen.Before(accs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, a := range accs {
			name := a.stats.Name
			if name == "" {
				name = a.key
			}
			fmt.Fprintf(w, "  %s: %d events, %d changes\n", name, a.stats.Events, a.stats.Changes)
			if a.stats.AID != 0 {
				fmt.Fprintf(w, "           AID: %d\n", a.stats.AID)
			}
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
