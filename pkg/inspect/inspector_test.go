package inspect

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hap-protocol/hap-go/pkg/examples"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// createTestBridge creates a bridge hosting a lamp and a weather station.
func createTestBridge(t *testing.T) (*model.Bridge, *examples.Lamp, *examples.WeatherStation) {
	t.Helper()

	bridge, err := model.NewBridge("Test Bridge", model.GenerateUUID("inspect-test-bridge"))
	if err != nil {
		t.Fatalf("NewBridge error: %v", err)
	}

	lamp, err := examples.NewLamp(examples.LampConfig{
		Name:         "Lamp",
		Manufacturer: "Test Vendor",
		Model:        "L-1",
		SerialNumber: "SN-LAMP-1",
		Dimmable:     true,
	})
	if err != nil {
		t.Fatalf("NewLamp error: %v", err)
	}

	weather, err := examples.NewWeatherStation(examples.WeatherStationConfig{
		Name:         "Weather Station",
		Manufacturer: "Test Vendor",
		Model:        "W-1",
		SerialNumber: "SN-WS-1",
	})
	if err != nil {
		t.Fatalf("NewWeatherStation error: %v", err)
	}

	if err := bridge.AddChildren([]*model.Accessory{lamp.Accessory(), weather.Accessory()}); err != nil {
		t.Fatalf("AddChildren error: %v", err)
	}
	bridge.AssignIdentifiers(model.NewMemoryAssigner())

	return bridge, lamp, weather
}

func TestNewBridgeInspector(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	if insp.Root() != bridge.Accessory {
		t.Error("Root() should return the bridge accessory")
	}
	if got := len(insp.Accessories()); got != 3 {
		t.Errorf("Accessories() returned %d accessories, want 3", got)
	}
}

func TestInspectorInspectTree(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	tree := insp.InspectTree()

	if tree.Name != "Test Bridge" {
		t.Errorf("Name = %q, want %q", tree.Name, "Test Bridge")
	}
	if tree.Signature == "" {
		t.Error("Signature should not be empty")
	}
	if len(tree.Accessories) != 3 {
		t.Fatalf("Expected 3 accessories, got %d", len(tree.Accessories))
	}
	if tree.Accessories[0].AID != 1 {
		t.Errorf("root AID = %d, want 1", tree.Accessories[0].AID)
	}

	// Bridged children carry info, primary, and bridging state services.
	lamp := tree.Accessories[1]
	if lamp.Name != "Lamp" {
		t.Errorf("child name = %q, want %q", lamp.Name, "Lamp")
	}
	if !lamp.Bridged {
		t.Error("child should report as bridged")
	}
	if len(lamp.Services) != 3 {
		t.Errorf("lamp has %d services, want 3", len(lamp.Services))
	}
}

func TestInspectorInspectAccessory(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	t.Run("by name", func(t *testing.T) {
		info, err := insp.InspectAccessory("Lamp")
		if err != nil {
			t.Fatalf("InspectAccessory error: %v", err)
		}
		if info.Category != model.CategoryLightbulb {
			t.Errorf("Category = %v, want %v", info.Category, model.CategoryLightbulb)
		}
	})

	t.Run("by AID", func(t *testing.T) {
		info, err := insp.InspectAccessory("2")
		if err != nil {
			t.Fatalf("InspectAccessory error: %v", err)
		}
		if info.Name != "Lamp" {
			t.Errorf("Name = %q, want %q", info.Name, "Lamp")
		}
	})

	t.Run("by UUID", func(t *testing.T) {
		uuid := bridge.Children()[0].UUID()
		info, err := insp.InspectAccessory(uuid)
		if err != nil {
			t.Fatalf("InspectAccessory error: %v", err)
		}
		if info.UUID != uuid {
			t.Errorf("UUID = %q, want %q", info.UUID, uuid)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := insp.InspectAccessory("Toaster")
		if !errors.Is(err, ErrAccessoryNotFound) {
			t.Errorf("error = %v, want ErrAccessoryNotFound", err)
		}
	})
}

func TestInspectorInspectService(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	t.Run("by tag", func(t *testing.T) {
		path, err := ParsePath("Lamp/Lightbulb")
		if err != nil {
			t.Fatalf("ParsePath error: %v", err)
		}
		info, err := insp.InspectService(path)
		if err != nil {
			t.Fatalf("InspectService error: %v", err)
		}
		if !info.Primary {
			t.Error("lightbulb service should be primary")
		}
		if len(info.Characteristics) != 2 {
			t.Errorf("lightbulb has %d characteristics, want 2 (On, Brightness)", len(info.Characteristics))
		}
	})

	t.Run("subtype disambiguation", func(t *testing.T) {
		indoor, err := insp.InspectService(&Path{
			Accessory: "Weather Station",
			Service:   "TemperatureSensor",
			Subtype:   "indoor",
		})
		if err != nil {
			t.Fatalf("InspectService error: %v", err)
		}
		outdoor, err := insp.InspectService(&Path{
			Accessory: "Weather Station",
			Service:   "TemperatureSensor",
			Subtype:   "outdoor",
		})
		if err != nil {
			t.Fatalf("InspectService error: %v", err)
		}
		if indoor.Subtype != "indoor" || outdoor.Subtype != "outdoor" {
			t.Errorf("subtypes = %q, %q", indoor.Subtype, outdoor.Subtype)
		}
		if indoor.IID == outdoor.IID {
			t.Error("repeated services should have distinct IIDs")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := insp.InspectService(&Path{Accessory: "Lamp", Service: "Thermostat"})
		if !errors.Is(err, ErrServiceNotFound) {
			t.Errorf("error = %v, want ErrServiceNotFound", err)
		}
	})
}

func TestInspectorReadCharacteristic(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	path, err := ParsePath("Lamp/Lightbulb/On")
	if err != nil {
		t.Fatalf("ParsePath error: %v", err)
	}

	value, info, err := insp.ReadCharacteristic(path)
	if err != nil {
		t.Fatalf("ReadCharacteristic error: %v", err)
	}
	if value != false {
		t.Errorf("value = %v, want false", value)
	}
	if info.Format != model.FormatBool {
		t.Errorf("Format = %q, want %q", info.Format, model.FormatBool)
	}
	if info.IID == 0 {
		t.Error("IID should be assigned")
	}
}

func TestInspectorWriteCharacteristic(t *testing.T) {
	bridge, lamp, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)
	ctx := context.Background()

	t.Run("write reaches the device", func(t *testing.T) {
		path := &Path{Accessory: "Lamp", Service: "Lightbulb", Characteristic: "On"}
		if err := insp.WriteCharacteristic(ctx, path, true); err != nil {
			t.Fatalf("WriteCharacteristic error: %v", err)
		}
		if !lamp.On() {
			t.Error("lamp should be on after write")
		}
	})

	t.Run("handler rejection is reported", func(t *testing.T) {
		path := &Path{Accessory: "Lamp", Service: "Lightbulb", Characteristic: "On"}
		err := insp.WriteCharacteristic(ctx, path, "not a bool")
		if err == nil {
			t.Fatal("expected handler error")
		}
		if !strings.Contains(err.Error(), "expected bool") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("read-only characteristic", func(t *testing.T) {
		path := &Path{Accessory: "Lamp", Service: "Accessory Information", Characteristic: "Manufacturer"}
		err := insp.WriteCharacteristic(ctx, path, "Acme")
		if !errors.Is(err, ErrNotWritable) {
			t.Errorf("error = %v, want ErrNotWritable", err)
		}
	})
}

func TestInspectorIdentifyAccessory(t *testing.T) {
	bridge, lamp, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	if err := insp.IdentifyAccessory(context.Background(), "Lamp"); err != nil {
		t.Fatalf("IdentifyAccessory error: %v", err)
	}
	if lamp.IdentifyRuns() != 1 {
		t.Errorf("IdentifyRuns = %d, want 1", lamp.IdentifyRuns())
	}
}

func TestInspectorFormatTree(t *testing.T) {
	bridge, _, _ := createTestBridge(t)
	insp := NewBridgeInspector(bridge)

	output := insp.FormatTree(insp.InspectTree(), nil)

	for _, want := range []string{
		"Tree: Test Bridge",
		"Accessory 1: Test Bridge [Bridge]",
		"Accessory 2: Lamp [Lightbulb]",
		"Temperature Sensor [indoor]",
		"On = false",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestInspectorStandaloneAccessory(t *testing.T) {
	lamp, err := examples.NewLamp(examples.LampConfig{Name: "Desk Lamp", SerialNumber: "SN-2"})
	if err != nil {
		t.Fatalf("NewLamp error: %v", err)
	}
	lamp.Accessory().AssignIdentifiers(model.NewMemoryAssigner())

	insp := NewInspector(lamp.Accessory())

	if got := len(insp.Accessories()); got != 1 {
		t.Fatalf("Accessories() returned %d, want 1", got)
	}
	tree := insp.InspectTree()
	if tree.Accessories[0].AID != 1 {
		t.Errorf("standalone AID = %d, want 1", tree.Accessories[0].AID)
	}
}
