package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// StateVersion is the current version of the state file formats.
const StateVersion = 1

// identifierState is the on-disk form of an IdentifierStore.
type identifierState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// AIDs maps accessory identity UUIDs to their assigned AIDs.
	AIDs map[string]uint64 `json:"aids,omitempty"`

	// NextAID is the next AID to hand out. AIDs are never reused, so
	// this only ever grows.
	NextAID uint64 `json:"next_aid,omitempty"`

	// IIDs maps service and characteristic keys to their assigned IIDs.
	IIDs map[string]uint64 `json:"iids,omitempty"`

	// NextIIDs is the next IID to hand out per accessory name. IIDs are
	// never reused either.
	NextIIDs map[string]uint64 `json:"next_iids,omitempty"`
}

// IdentifierStore is a durable model.IdentifierAssigner backed by a JSON
// file. Identifiers are assigned on first use and stay stable across
// restarts once saved: known keys return their recorded number, new keys get
// the next free one, and numbers are never reused even after the resource
// they named disappears.
//
// Assignments happen in memory; call Save after publishing a tree to make
// them durable.
type IdentifierStore struct {
	mu    sync.Mutex
	path  string
	state identifierState
	dirty bool
}

var _ model.IdentifierAssigner = (*IdentifierStore)(nil)

// NewIdentifierStore creates a store persisting to path. Call Load to pick
// up previously saved assignments.
func NewIdentifierStore(path string) *IdentifierStore {
	return &IdentifierStore{
		path: path,
		state: identifierState{
			AIDs:     make(map[string]uint64),
			NextAID:  2,
			IIDs:     make(map[string]uint64),
			NextIIDs: make(map[string]uint64),
		},
	}
}

// AID implements model.IdentifierAssigner.
func (s *IdentifierStore) AID(accessoryUUID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if aid, ok := s.state.AIDs[accessoryUUID]; ok {
		return aid
	}
	aid := s.state.NextAID
	s.state.NextAID++
	s.state.AIDs[accessoryUUID] = aid
	s.dirty = true
	return aid
}

// IID implements model.IdentifierAssigner.
func (s *IdentifierStore) IID(accessoryName, serviceType, subtype, characteristicType string) uint64 {
	key := accessoryName + "|" + model.IdentifierKey(serviceType, subtype, characteristicType)

	s.mu.Lock()
	defer s.mu.Unlock()

	if iid, ok := s.state.IIDs[key]; ok {
		return iid
	}
	next, ok := s.state.NextIIDs[accessoryName]
	if !ok {
		next = 2
	}
	s.state.NextIIDs[accessoryName] = next + 1
	s.state.IIDs[key] = next
	s.dirty = true
	return next
}

// Dirty reports whether assignments were made since the last Save or Load.
func (s *IdentifierStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Save persists the assignments to disk.
func (s *IdentifierStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	s.state.Version = StateVersion
	s.state.SavedAt = time.Now()

	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Load reads previously saved assignments from disk, replacing the
// in-memory state. A missing file leaves the store empty and is not an
// error.
func (s *IdentifierStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	state := identifierState{}
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	if state.AIDs == nil {
		state.AIDs = make(map[string]uint64)
	}
	if state.NextAID < 2 {
		state.NextAID = 2
	}
	if state.IIDs == nil {
		state.IIDs = make(map[string]uint64)
	}
	if state.NextIIDs == nil {
		state.NextIIDs = make(map[string]uint64)
	}
	s.state = state
	s.dirty = false
	return nil
}

// Clear removes the state file. In-memory assignments are kept.
func (s *IdentifierStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// BridgeState contains the published shape of a bridge for change detection
// across restarts.
type BridgeState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Signature is the configuration signature at save time.
	Signature string `json:"signature,omitempty"`

	// Children records the bridged accessories at save time.
	Children []ChildRecord `json:"children,omitempty"`
}

// ChildRecord describes one bridged accessory.
type ChildRecord struct {
	// UUID is the accessory's identity UUID.
	UUID string `json:"uuid"`

	// Name is the accessory's display name.
	Name string `json:"name,omitempty"`

	// Category is the accessory category number.
	Category uint16 `json:"category,omitempty"`

	// AddedAt is when the accessory was first recorded.
	AddedAt time.Time `json:"added_at,omitempty"`
}

// SnapshotBridge captures the current state of b as a BridgeState.
func SnapshotBridge(b *model.Bridge) *BridgeState {
	state := &BridgeState{
		Signature: b.ConfigSignature(),
	}
	now := time.Now()
	for _, child := range b.Children() {
		state.Children = append(state.Children, ChildRecord{
			UUID:     child.UUID(),
			Name:     child.Name(),
			Category: uint16(child.Category()),
			AddedAt:  now,
		})
	}
	return state
}

// BridgeStateStore manages persistence of bridge state to a JSON file.
type BridgeStateStore struct {
	mu   sync.Mutex
	path string
}

// NewBridgeStateStore creates a new bridge state store.
func NewBridgeStateStore(path string) *BridgeStateStore {
	return &BridgeStateStore{path: path}
}

// Save persists the bridge state to disk.
func (s *BridgeStateStore) Save(state *BridgeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the bridge state from disk.
// Returns nil, nil if the file doesn't exist (no saved state).
func (s *BridgeStateStore) Load() (*BridgeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &BridgeState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *BridgeStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
