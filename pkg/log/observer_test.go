package log

import (
	"context"
	"testing"

	"github.com/hap-protocol/hap-go/pkg/model"
)

func newObservedLamp(t *testing.T) (*model.Accessory, *model.Service, *mockLogger) {
	t.Helper()

	a, err := model.NewAccessory("Desk Lamp", model.GenerateUUID("desk-lamp"))
	if err != nil {
		t.Fatalf("NewAccessory failed: %v", err)
	}

	svc, err := model.NewService("Lightbulb", "43", "")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	on, err := model.NewCharacteristic("On", "25", model.Props{
		Format: model.FormatBool,
		Perms:  []model.Perm{model.PermRead, model.PermWrite, model.PermEvents},
	})
	if err != nil {
		t.Fatalf("NewCharacteristic failed: %v", err)
	}
	if err := svc.AddCharacteristic(on); err != nil {
		t.Fatalf("AddCharacteristic failed: %v", err)
	}
	if err := a.AddService(svc); err != nil {
		t.Fatalf("AddService failed: %v", err)
	}

	mock := &mockLogger{}
	a.Subscribe(NewAccessoryObserver(mock))
	return a, svc, mock
}

func TestAccessoryObserverLogsChanges(t *testing.T) {
	a, svc, mock := newObservedLamp(t)

	if err := svc.SetCharacteristicValue(context.Background(), "On", true); err != nil {
		t.Fatalf("SetCharacteristicValue failed: %v", err)
	}

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}

	event := mock.events[0]
	if event.Category != CategoryChange {
		t.Errorf("Category = %v, want %v", event.Category, CategoryChange)
	}
	if event.Accessory != "Desk Lamp" {
		t.Errorf("Accessory = %q, want %q", event.Accessory, "Desk Lamp")
	}
	if event.AccessoryUUID != a.UUID() {
		t.Errorf("AccessoryUUID = %q, want %q", event.AccessoryUUID, a.UUID())
	}
	if event.ConnID != "" {
		t.Errorf("ConnID = %q, want empty for local writes", event.ConnID)
	}

	if event.Change == nil {
		t.Fatal("Change is nil")
	}
	if event.Change.ServiceName != "Lightbulb" {
		t.Errorf("ServiceName = %q, want %q", event.Change.ServiceName, "Lightbulb")
	}
	if event.Change.CharacteristicName != "On" {
		t.Errorf("CharacteristicName = %q, want %q", event.Change.CharacteristicName, "On")
	}
	if event.Change.OldValue != false {
		t.Errorf("OldValue = %v, want false", event.Change.OldValue)
	}
	if event.Change.NewValue != true {
		t.Errorf("NewValue = %v, want true", event.Change.NewValue)
	}
}

func TestAccessoryObserverCarriesConnID(t *testing.T) {
	_, svc, mock := newObservedLamp(t)

	on, err := svc.GetCharacteristic("On")
	if err != nil {
		t.Fatalf("GetCharacteristic failed: %v", err)
	}
	on.Set(context.Background(), true, model.WriteRequest{ConnID: "conn-7"}, nil)

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}
	if mock.events[0].ConnID != "conn-7" {
		t.Errorf("ConnID = %q, want %q", mock.events[0].ConnID, "conn-7")
	}
}

func TestAccessoryObserverLogsIdentify(t *testing.T) {
	a, _, mock := newObservedLamp(t)

	a.Identify(context.Background(), model.IdentifyRequest{ConnID: "conn-9"}, nil)

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}

	event := mock.events[0]
	if event.Category != CategoryIdentify {
		t.Errorf("Category = %v, want %v", event.Category, CategoryIdentify)
	}
	if event.Accessory != "Desk Lamp" {
		t.Errorf("Accessory = %q, want %q", event.Accessory, "Desk Lamp")
	}
	if event.ConnID != "conn-9" {
		t.Errorf("ConnID = %q, want %q", event.ConnID, "conn-9")
	}
	if event.Change != nil || event.Config != nil {
		t.Error("identify events should carry no payload")
	}
}

func TestAccessoryObserverLogsConfig(t *testing.T) {
	a, _, mock := newObservedLamp(t)

	sig := a.RecomputeConfiguration()

	if len(mock.events) != 1 {
		t.Fatalf("got %d events, want 1", len(mock.events))
	}

	event := mock.events[0]
	if event.Category != CategoryConfig {
		t.Errorf("Category = %v, want %v", event.Category, CategoryConfig)
	}
	if event.Config == nil {
		t.Fatal("Config is nil")
	}
	if event.Config.Signature != sig {
		t.Errorf("Signature = %q, want %q", event.Config.Signature, sig)
	}
}

func TestNewAccessoryObserverNilLogger(t *testing.T) {
	a, svc, _ := newObservedLamp(t)
	a.Subscribe(NewAccessoryObserver(nil))

	// Events must be swallowed without panicking.
	if err := svc.SetCharacteristicValue(context.Background(), "On", true); err != nil {
		t.Fatalf("SetCharacteristicValue failed: %v", err)
	}
	a.Identify(context.Background(), model.IdentifyRequest{}, nil)
}
