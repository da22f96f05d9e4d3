package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		Category:  CategoryChange,
		Accessory: "Desk Lamp",
		ConnID:    "conn-123",
		Change: &ChangeEventData{
			CharacteristicType: "00000025-0000-1000-8000-0026BB765291",
			CharacteristicName: "On",
			NewValue:           true,
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.Accessory != event.Accessory {
		t.Errorf("Accessory: got %q, want %q", decoded.Accessory, event.Accessory)
	}
	if decoded.Change == nil {
		t.Error("Change is nil")
	} else if decoded.Change.CharacteristicName != "On" {
		t.Errorf("CharacteristicName: got %q, want %q", decoded.Change.CharacteristicName, "On")
	}
}

func TestFileLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger1, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger1.Log(Event{Timestamp: time.Now(), Category: CategoryChange, Accessory: "Lamp A"})
	logger1.Close()

	info1, _ := os.Stat(path)
	size1 := info1.Size()

	logger2, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger second open failed: %v", err)
	}
	logger2.Log(Event{Timestamp: time.Now(), Category: CategoryIdentify, Accessory: "Lamp B"})
	logger2.Close()

	info2, _ := os.Stat(path)
	if info2.Size() <= size1 {
		t.Errorf("file did not grow: size before=%d, size after=%d", size1, info2.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Accessory != "Lamp A" {
		t.Errorf("first event Accessory = %q, want %q", events[0].Accessory, "Lamp A")
	}
	if events[1].Accessory != "Lamp B" {
		t.Errorf("second event Accessory = %q, want %q", events[1].Accessory, "Lamp B")
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					Category:  CategoryChange,
					Accessory: "Lamp " + string(rune('A'+id)),
				})
			}
		}(i)
	}

	wg.Wait()
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	count := 0
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		count++
	}

	if count != numGoroutines*eventsPerGoroutine {
		t.Errorf("event count: got %d, want %d", count, numGoroutines*eventsPerGoroutine)
	}
}

func TestFileLoggerClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryChange})

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close should not panic
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryChange})
}
