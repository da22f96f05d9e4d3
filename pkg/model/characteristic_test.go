package model

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTemperatureCharacteristic(t *testing.T) *Characteristic {
	t.Helper()
	min, max, step := 0.0, 100.0, 0.1
	c, err := NewCharacteristic("Current Temperature", "11", Props{
		Format:   FormatFloat,
		Unit:     UnitCelsius,
		Perms:    []Perm{PermRead, PermEvents},
		MinValue: &min,
		MaxValue: &max,
		MinStep:  &step,
	})
	if err != nil {
		t.Fatalf("NewCharacteristic failed: %v", err)
	}
	return c
}

func TestCharacteristicGetWithoutHandler(t *testing.T) {
	c := newOnCharacteristic(t)
	c.UpdateValue(true)

	var got any
	var gotErr error
	c.Get(context.Background(), ReadRequest{}, func(value any, err error) {
		got, gotErr = value, err
	})
	if gotErr != nil {
		t.Fatalf("unexpected error: %v", gotErr)
	}
	if got != true {
		t.Errorf("expected the cached value, got %v", got)
	}
}

func TestCharacteristicGetHandlerRefreshes(t *testing.T) {
	c := newTemperatureCharacteristic(t)
	c.SetReadHandler(func(ctx context.Context, req ReadRequest, respond ReadResponder) {
		respond(23.4, nil)
	})

	var got any
	c.Get(context.Background(), ReadRequest{ConnID: "conn-1"}, func(value any, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		got = value
	})
	if got != 23.4 {
		t.Errorf("expected 23.4, got %v", got)
	}
	if c.Value() != 23.4 {
		t.Errorf("expected the cache refreshed, got %v", c.Value())
	}
}

func TestCharacteristicGetHandlerError(t *testing.T) {
	c := newTemperatureCharacteristic(t)
	c.UpdateValue(21.0)

	readErr := errors.New("sensor offline")
	c.SetReadHandler(func(ctx context.Context, req ReadRequest, respond ReadResponder) {
		respond(99.9, readErr)
	})

	var got any
	var gotErr error
	c.Get(context.Background(), ReadRequest{}, func(value any, err error) {
		got, gotErr = value, err
	})
	if gotErr != readErr {
		t.Errorf("expected the handler error, got %v", gotErr)
	}
	if got != nil {
		t.Errorf("expected no value on error, got %v", got)
	}
	if c.Value() != 21.0 {
		t.Errorf("expected the cache untouched, got %v", c.Value())
	}
}

func TestCharacteristicGetHandlerNilValue(t *testing.T) {
	c := newOnCharacteristic(t)
	c.UpdateValue(true)

	c.SetReadHandler(func(ctx context.Context, req ReadRequest, respond ReadResponder) {
		respond(nil, nil)
	})

	var got any
	c.Get(context.Background(), ReadRequest{}, func(value any, err error) {
		got = value
	})
	if got != false {
		t.Errorf("expected the format default, got %v", got)
	}
	if c.Value() != false {
		t.Errorf("expected the default committed, got %v", c.Value())
	}
}

func TestCharacteristicGetResponderLatch(t *testing.T) {
	c := newTemperatureCharacteristic(t)
	c.SetReadHandler(func(ctx context.Context, req ReadRequest, respond ReadResponder) {
		respond(18.0, nil)
		respond(40.0, nil)
		respond(nil, errors.New("late failure"))
	})

	deliveries := 0
	c.Get(context.Background(), ReadRequest{}, func(value any, err error) {
		deliveries++
		if err != nil {
			t.Errorf("expected the first resolution to win, got error %v", err)
		}
		if value != 18.0 {
			t.Errorf("expected 18, got %v", value)
		}
	})
	if deliveries != 1 {
		t.Errorf("expected exactly 1 delivery, got %d", deliveries)
	}
	if c.Value() != 18.0 {
		t.Errorf("expected the first value committed, got %v", c.Value())
	}
}

func TestCharacteristicSetWithoutHandler(t *testing.T) {
	c := newOnCharacteristic(t)

	delivered := false
	c.Set(context.Background(), true, WriteRequest{}, func(err error) {
		delivered = true
		if err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})
	if !delivered {
		t.Fatal("expected the responder to run")
	}
	if c.Value() != true {
		t.Errorf("expected true, got %v", c.Value())
	}
}

func TestCharacteristicSetHandlerRejects(t *testing.T) {
	a := newLampAccessory(t, "Lamp")
	svc, err := a.GetService("Lightbulb")
	if err != nil {
		t.Fatalf("GetService failed: %v", err)
	}
	on, err := svc.GetCharacteristic("On")
	if err != nil {
		t.Fatalf("GetCharacteristic failed: %v", err)
	}

	writeErr := errors.New("hardware refused")
	on.SetWriteHandler(func(ctx context.Context, value any, req WriteRequest, respond WriteResponder) {
		respond(writeErr)
	})

	obs := &captureObserver{}
	a.Subscribe(obs)

	var got error
	on.Set(context.Background(), true, WriteRequest{}, func(err error) {
		got = err
	})
	if got != writeErr {
		t.Errorf("expected the handler error, got %v", got)
	}
	if on.Value() != false {
		t.Errorf("expected the cache untouched, got %v", on.Value())
	}
	if len(obs.changes) != 0 {
		t.Errorf("expected no change event on rejection, got %d", len(obs.changes))
	}
}

func TestCharacteristicSetHandlerAccepts(t *testing.T) {
	c := newOnCharacteristic(t)
	c.SetWriteHandler(func(ctx context.Context, value any, req WriteRequest, respond WriteResponder) {
		if value != true {
			t.Errorf("expected the handler to see the raw value, got %v", value)
		}
		respond(nil)
	})

	c.Set(context.Background(), true, WriteRequest{}, nil)
	if c.Value() != true {
		t.Errorf("expected the value committed after acceptance, got %v", c.Value())
	}
}

func TestCharacteristicSetResponderLatch(t *testing.T) {
	c := newOnCharacteristic(t)
	c.SetWriteHandler(func(ctx context.Context, value any, req WriteRequest, respond WriteResponder) {
		respond(nil)
		respond(errors.New("late failure"))
	})

	deliveries := 0
	c.Set(context.Background(), true, WriteRequest{}, func(err error) {
		deliveries++
		if err != nil {
			t.Errorf("expected the first resolution to win, got %v", err)
		}
	})
	if deliveries != 1 {
		t.Errorf("expected 1 delivery, got %d", deliveries)
	}
	if c.Value() != true {
		t.Errorf("expected the value committed, got %v", c.Value())
	}
}

func TestCharacteristicSetNilValue(t *testing.T) {
	c := newOnCharacteristic(t)
	c.UpdateValue(true)

	c.Set(context.Background(), nil, WriteRequest{}, nil)
	if c.Value() != false {
		t.Errorf("expected nil replaced by the format default, got %v", c.Value())
	}
}

func TestCharacteristicSetIgnoresWritePermission(t *testing.T) {
	c, err := NewCharacteristic("Serial Number", TypeSerialNumber, Props{
		Format: FormatString,
		Perms:  []Perm{PermRead},
	})
	if err != nil {
		t.Fatalf("NewCharacteristic failed: %v", err)
	}

	c.Set(context.Background(), "SN-1", WriteRequest{}, nil)
	if c.Value() != "SN-1" {
		t.Errorf("expected the blind write to commit, got %v", c.Value())
	}
}

func TestCharacteristicUpdateValueBypassesHandler(t *testing.T) {
	c := newOnCharacteristic(t)
	handlerCalls := 0
	c.SetWriteHandler(func(ctx context.Context, value any, req WriteRequest, respond WriteResponder) {
		handlerCalls++
		respond(errors.New("always refuse"))
	})

	c.UpdateValue(true)
	if handlerCalls != 0 {
		t.Errorf("expected no handler call, got %d", handlerCalls)
	}
	if c.Value() != true {
		t.Errorf("expected the value committed, got %v", c.Value())
	}
}

func TestCharacteristicChangeDetection(t *testing.T) {
	a := newLampAccessory(t, "Lamp")
	svc, err := a.GetService("Lightbulb")
	if err != nil {
		t.Fatalf("GetService failed: %v", err)
	}
	brightness, err := NewCharacteristic("Brightness", "8", Props{
		Format: FormatInt,
		Perms:  []Perm{PermRead, PermWrite, PermEvents},
	})
	if err != nil {
		t.Fatalf("NewCharacteristic failed: %v", err)
	}
	if err := svc.AddCharacteristic(brightness); err != nil {
		t.Fatalf("AddCharacteristic failed: %v", err)
	}

	obs := &captureObserver{}
	a.Subscribe(obs)

	brightness.UpdateValue(int64(50))
	if len(obs.changes) != 1 {
		t.Fatalf("expected 1 change event, got %d", len(obs.changes))
	}

	// Numbers compare by magnitude regardless of Go type.
	brightness.UpdateValue(float64(50))
	if len(obs.changes) != 1 {
		t.Errorf("expected no event for an equal value, got %d", len(obs.changes))
	}

	brightness.UpdateValue(51)
	if len(obs.changes) != 2 {
		t.Errorf("expected an event for a changed value, got %d", len(obs.changes))
	}
}

func TestCharacteristicUpdateValueWithOrigin(t *testing.T) {
	a := newLampAccessory(t, "Lamp")
	svc, err := a.GetService("Lightbulb")
	if err != nil {
		t.Fatalf("GetService failed: %v", err)
	}
	on, err := svc.GetCharacteristic("On")
	if err != nil {
		t.Fatalf("GetCharacteristic failed: %v", err)
	}

	obs := &captureObserver{}
	a.Subscribe(obs)

	origin := "simulation"
	on.UpdateValueWithOrigin(true, origin)

	if len(obs.changes) != 1 {
		t.Fatalf("expected 1 change event, got %d", len(obs.changes))
	}
	if obs.changes[0].Origin != origin {
		t.Errorf("expected origin %q, got %v", origin, obs.changes[0].Origin)
	}
	if obs.changes[0].ConnID != "" {
		t.Errorf("expected no ConnID on device updates, got %q", obs.changes[0].ConnID)
	}
}

func TestCharacteristicAsyncResponder(t *testing.T) {
	c := newTemperatureCharacteristic(t)
	c.SetReadHandler(func(ctx context.Context, req ReadRequest, respond ReadResponder) {
		go respond(25.5, nil)
	})

	done := make(chan any, 1)
	c.Get(context.Background(), ReadRequest{}, func(value any, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		done <- value
	})

	select {
	case v := <-done:
		if v != 25.5 {
			t.Errorf("expected 25.5, got %v", v)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the responder")
	}
}
