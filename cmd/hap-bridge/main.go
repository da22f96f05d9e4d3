// Command hap-bridge demonstrates a bridged accessory tree.
//
// This example shows how to:
//   - Build accessories from the catalog and bridge them
//   - Persist accessory and instance IDs across restarts
//   - Record characteristic changes to an event log and a history store
//   - Inspect the published tree
//   - Simulate device-side value changes
//
// Usage:
//
//	go run ./cmd/hap-bridge [flags]
//
// The bridge hosts a dimmable lamp, a thermostat, and a weather station,
// and drives them with simulated hardware until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hap-protocol/hap-go/pkg/examples"
	"github.com/hap-protocol/hap-go/pkg/history"
	"github.com/hap-protocol/hap-go/pkg/inspect"
	haplog "github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/persistence"
	"github.com/hap-protocol/hap-go/pkg/registry"
	"github.com/hap-protocol/hap-go/pkg/version"
)

func main() {
	dataDir := flag.String("data", "data", "directory for identifiers, state, and logs")
	interval := flag.Duration("interval", 5*time.Second, "simulation tick interval")
	debug := flag.Bool("debug", false, "mirror accessory events to stderr")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.Println("HAP Bridge Example")
	log.Println("==================")

	if err := run(*dataDir, *interval, *debug); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(dataDir string, interval time.Duration, debug bool) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Build the accessory tree.
	bridge, err := model.NewBridge("Example Bridge", model.GenerateUUID("hap-bridge-example"))
	if err != nil {
		return fmt.Errorf("creating bridge: %w", err)
	}

	lamp, err := examples.NewLamp(examples.LampConfig{
		Name:         "Living Room Lamp",
		Manufacturer: "HAP Examples",
		Model:        "Lamp-1",
		SerialNumber: "LAMP-001",
		Dimmable:     true,
	})
	if err != nil {
		return fmt.Errorf("creating lamp: %w", err)
	}

	thermostat, err := examples.NewThermostat(examples.ThermostatConfig{
		Name:         "Hallway Thermostat",
		Manufacturer: "HAP Examples",
		Model:        "Thermo-1",
		SerialNumber: "THERMO-001",
	})
	if err != nil {
		return fmt.Errorf("creating thermostat: %w", err)
	}

	weather, err := examples.NewWeatherStation(examples.WeatherStationConfig{
		Name:         "Roof Weather Station",
		Manufacturer: "HAP Examples",
		Model:        "Weather-1",
		SerialNumber: "WEATHER-001",
	})
	if err != nil {
		return fmt.Errorf("creating weather station: %w", err)
	}

	children := []*model.Accessory{lamp.Accessory(), thermostat.Accessory(), weather.Accessory()}
	if err := bridge.AddChildren(children); err != nil {
		return fmt.Errorf("bridging accessories: %w", err)
	}

	// Report the library version as the bridge firmware revision.
	firmware, err := bridge.Info().GetCharacteristic(model.TypeFirmwareRevision)
	if err != nil {
		return fmt.Errorf("promoting firmware revision: %w", err)
	}
	firmware.UpdateValue(version.Current)

	// Durable identifiers keep AIDs and IIDs stable across restarts.
	store := persistence.NewIdentifierStore(filepath.Join(dataDir, "identifiers.json"))
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading identifiers: %w", err)
	}
	bridge.AssignIdentifiers(store)
	if store.Dirty() {
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving identifiers: %w", err)
		}
	}

	// Check the tree against the catalog before publishing it.
	result := registry.ValidateBridge(bridge)
	for _, warning := range result.Warnings {
		log.Printf("Validation warning: %s", warning)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			log.Printf("Validation error: %s", e)
		}
		return fmt.Errorf("accessory tree failed validation")
	}

	// Event pipeline: a CBOR event log on disk, optionally mirrored to
	// stderr, plus a queryable history store.
	fileLogger, err := haplog.NewFileLogger(filepath.Join(dataDir, "accessory.hlog"))
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer fileLogger.Close()

	var logger haplog.Logger = fileLogger
	if debug {
		textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger = haplog.NewMultiLogger(fileLogger, haplog.NewSlogAdapter(slog.New(textHandler)))
	}
	bridge.Subscribe(haplog.NewAccessoryObserver(logger))

	histStore, err := history.Open(history.Config{Path: filepath.Join(dataDir, "changes.db")})
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer histStore.Close()
	bridge.Subscribe(history.NewRecorder(histStore, logger))

	// Show what a controller would see.
	insp := inspect.NewBridgeInspector(bridge)
	fmt.Print(insp.FormatTree(insp.InspectTree(), nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runSimulation(ctx, interval, lamp, thermostat, weather)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	if store.Dirty() {
		if err := store.Save(); err != nil {
			log.Printf("Error saving identifiers: %v", err)
		}
	}

	stateStore := persistence.NewBridgeStateStore(filepath.Join(dataDir, "bridge.json"))
	if err := stateStore.Save(persistence.SnapshotBridge(bridge)); err != nil {
		log.Printf("Error saving bridge state: %v", err)
	}

	log.Println("Goodbye!")
	return nil
}

func runSimulation(ctx context.Context, interval time.Duration, lamp *examples.Lamp, thermostat *examples.Thermostat, weather *examples.WeatherStation) {
	log.Println("Starting device simulation...")

	weather.SetIndoorTemperature(21.5)
	weather.SetOutdoorTemperature(14.0)
	weather.SetHumidity(55)

	tick := 0
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick++

			// The thermostat drifts toward its setpoint.
			thermostat.Tick()
			log.Printf("Thermostat: %.1f °C (target %.1f °C)",
				thermostat.Temperature(), thermostat.Target())

			// Outdoor conditions oscillate slowly.
			drift := 0.2
			if tick%2 == 0 {
				drift = -drift
			}
			weather.SetOutdoorTemperature(14.0 + drift)
			weather.SetHumidity(55 + float64(tick%5))

			// Somebody flips the wall switch now and then.
			if tick%6 == 0 {
				lamp.SetOn(!lamp.On())
				log.Printf("Lamp switched %s", onOff(lamp.On()))
			}
		}
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
