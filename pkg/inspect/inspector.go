package inspect

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Inspector errors.
var (
	ErrAccessoryNotFound      = errors.New("accessory not found")
	ErrServiceNotFound        = errors.New("service not found")
	ErrCharacteristicNotFound = errors.New("characteristic not found")
	ErrNotWritable            = errors.New("characteristic is not writable")
)

// Inspector provides inspection and mutation capabilities for a local
// accessory tree. Lookups only see active characteristics; optional
// templates are never promoted by inspection.
type Inspector struct {
	root   *model.Accessory
	bridge *model.Bridge
}

// NewInspector creates a new Inspector for a standalone accessory.
func NewInspector(a *model.Accessory) *Inspector {
	return &Inspector{root: a}
}

// NewBridgeInspector creates a new Inspector covering a bridge and its
// children.
func NewBridgeInspector(b *model.Bridge) *Inspector {
	return &Inspector{root: b.Accessory, bridge: b}
}

// Root returns the underlying root accessory.
func (i *Inspector) Root() *model.Accessory {
	return i.root
}

// Accessories returns the inspected accessories, root first.
func (i *Inspector) Accessories() []*model.Accessory {
	out := []*model.Accessory{i.root}
	if i.bridge != nil {
		out = append(out, i.bridge.Children()...)
	}
	return out
}

// TreeInfo represents the complete accessory tree for display.
type TreeInfo struct {
	Name        string
	UUID        string
	Signature   string
	Accessories []AccessoryInfo
}

// AccessoryInfo represents accessory information for display.
type AccessoryInfo struct {
	Name      string
	UUID      string
	AID       uint64
	Category  model.Category
	Reachable bool
	Bridged   bool
	Services  []ServiceInfo
}

// ServiceInfo represents service information for display.
type ServiceInfo struct {
	Name            string
	Type            string
	Subtype         string
	IID             uint64
	Primary         bool
	Hidden          bool
	Characteristics []CharacteristicInfo
}

// CharacteristicInfo represents characteristic information for display.
type CharacteristicInfo struct {
	Name   string
	Type   string
	IID    uint64
	Value  any
	Format model.Format
	Unit   model.Unit
	Perms  []model.Perm
}

// InspectTree returns a complete tree of the accessory structure.
func (i *Inspector) InspectTree() *TreeInfo {
	tree := &TreeInfo{
		Name:      i.root.Name(),
		UUID:      i.root.UUID(),
		Signature: i.root.ConfigSignature(),
	}

	for _, a := range i.Accessories() {
		tree.Accessories = append(tree.Accessories, i.inspectAccessoryInternal(a))
	}

	return tree
}

// InspectAccessory returns information about a specific accessory. The
// selector may be a display name, an identity UUID, or a decimal AID.
func (i *Inspector) InspectAccessory(selector string) (*AccessoryInfo, error) {
	a, err := i.resolveAccessory(&Path{Accessory: selector})
	if err != nil {
		return nil, err
	}

	info := i.inspectAccessoryInternal(a)
	return &info, nil
}

// inspectAccessoryInternal extracts accessory info without error handling.
func (i *Inspector) inspectAccessoryInternal(a *model.Accessory) AccessoryInfo {
	info := AccessoryInfo{
		Name:      a.Name(),
		UUID:      a.UUID(),
		AID:       a.AID(),
		Category:  a.Category(),
		Reachable: a.Reachable(),
		Bridged:   a.Bridged(),
	}

	for _, s := range a.Services() {
		info.Services = append(info.Services, i.inspectServiceInternal(s))
	}

	return info
}

// InspectService returns information about a specific service.
func (i *Inspector) InspectService(path *Path) (*ServiceInfo, error) {
	s, err := i.resolveService(path)
	if err != nil {
		return nil, err
	}

	info := i.inspectServiceInternal(s)
	return &info, nil
}

// inspectServiceInternal extracts service info without error handling.
func (i *Inspector) inspectServiceInternal(s *model.Service) ServiceInfo {
	info := ServiceInfo{
		Name:    s.Name(),
		Type:    s.Type(),
		Subtype: s.Subtype(),
		IID:     s.IID(),
		Primary: s.Primary(),
		Hidden:  s.Hidden(),
	}

	for _, c := range s.Characteristics() {
		p := c.Props()
		info.Characteristics = append(info.Characteristics, CharacteristicInfo{
			Name:   c.Name(),
			Type:   c.Type(),
			IID:    c.IID(),
			Value:  c.Value(),
			Format: p.Format,
			Unit:   p.Unit,
			Perms:  p.Perms,
		})
	}

	return info
}

// ReadCharacteristic returns the cached value of the characteristic a path
// selects. Read handlers are not invoked; use Characteristic.Get for a
// handler-backed read.
func (i *Inspector) ReadCharacteristic(path *Path) (any, *CharacteristicInfo, error) {
	c, err := i.resolveCharacteristic(path)
	if err != nil {
		return nil, nil, err
	}

	p := c.Props()
	info := &CharacteristicInfo{
		Name:   c.Name(),
		Type:   c.Type(),
		IID:    c.IID(),
		Value:  c.Value(),
		Format: p.Format,
		Unit:   p.Unit,
		Perms:  p.Perms,
	}
	return info.Value, info, nil
}

// WriteCharacteristic writes a value through the characteristic's write
// path and waits for the outcome. Unlike direct model writes, the write
// permission is enforced here.
func (i *Inspector) WriteCharacteristic(ctx context.Context, path *Path, value any) error {
	c, err := i.resolveCharacteristic(path)
	if err != nil {
		return err
	}

	if !model.ContainsPerm(c.Props().Perms, model.PermWrite) {
		return fmt.Errorf("%w: %s", ErrNotWritable, c.Name())
	}

	done := make(chan error, 1)
	c.Set(ctx, value, model.WriteRequest{ConnID: "inspect"}, func(err error) {
		done <- err
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IdentifyAccessory runs the identify routine of the selected accessory and
// waits for the outcome.
func (i *Inspector) IdentifyAccessory(ctx context.Context, selector string) error {
	a, err := i.resolveAccessory(&Path{Accessory: selector})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	a.Identify(ctx, model.IdentifyRequest{ConnID: "inspect"}, func(err error) {
		done <- err
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolveAccessory finds the accessory a path selects.
func (i *Inspector) resolveAccessory(path *Path) (*model.Accessory, error) {
	aid, byAID := parseAID(path.Accessory)
	normalized, _ := model.NormalizeUUID(path.Accessory)
	for _, a := range i.Accessories() {
		if byAID && a.AID() == aid {
			return a, nil
		}
		if a.Name() == path.Accessory {
			return a, nil
		}
		if normalized != "" && a.UUID() == normalized {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrAccessoryNotFound, path.Accessory)
}

func parseAID(s string) (uint64, bool) {
	aid, err := strconv.ParseUint(s, 10, 64)
	return aid, err == nil
}

// resolveService finds the service a path selects.
func (i *Inspector) resolveService(path *Path) (*model.Service, error) {
	a, err := i.resolveAccessory(path)
	if err != nil {
		return nil, err
	}

	typeUUID, _ := ResolveServiceType(path.Service)
	for _, s := range a.Services() {
		if path.Subtype != "" && s.Subtype() != path.Subtype {
			continue
		}
		if s.Name() == path.Service || (typeUUID != "" && s.Type() == typeUUID) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, path.Service)
}

// resolveCharacteristic finds the active characteristic a path selects.
func (i *Inspector) resolveCharacteristic(path *Path) (*model.Characteristic, error) {
	s, err := i.resolveService(path)
	if err != nil {
		return nil, err
	}

	typeUUID, _ := ResolveCharacteristicType(path.Characteristic)
	for _, c := range s.Characteristics() {
		if c.Name() == path.Characteristic || (typeUUID != "" && c.Type() == typeUUID) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrCharacteristicNotFound, path.Characteristic)
}

// FormatTree formats the accessory tree for display.
func (i *Inspector) FormatTree(tree *TreeInfo, formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}

	var result string

	// Header
	result += fmt.Sprintf("Tree: %s\n", tree.Name)
	result += fmt.Sprintf("Signature: %s\n", tree.Signature)
	result += "---\n"

	// Accessories
	for _, a := range tree.Accessories {
		result += i.formatAccessory(&a, formatter, 0)
	}

	return result
}

// FormatAccessory formats an accessory for display.
func (i *Inspector) FormatAccessory(a *AccessoryInfo, formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return i.formatAccessory(a, formatter, 0)
}

func (i *Inspector) formatAccessory(a *AccessoryInfo, f *Formatter, depth int) string {
	var result string

	// Accessory header
	header := fmt.Sprintf("Accessory %d: %s [%s]", a.AID, a.Name, a.Category)
	if !a.Reachable {
		header += " (unreachable)"
	}
	result += f.Indent(depth, header) + "\n"

	// Services
	for _, s := range a.Services {
		result += i.formatService(&s, f, depth+1)
	}

	return result
}

// FormatService formats a service for display.
func (i *Inspector) FormatService(s *ServiceInfo, formatter *Formatter) string {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return i.formatService(s, formatter, 0)
}

func (i *Inspector) formatService(s *ServiceInfo, f *Formatter, depth int) string {
	var result string

	// Service header
	header := s.Name
	if s.Subtype != "" {
		header += fmt.Sprintf(" [%s]", s.Subtype)
	}
	if f.ShowIDs {
		header += fmt.Sprintf(" (iid %d)", s.IID)
	}
	if s.Primary {
		header += " primary"
	}
	if s.Hidden {
		header += " hidden"
	}
	result += f.Indent(depth, header) + "\n"

	// Characteristics
	for _, c := range s.Characteristics {
		result += f.Indent(depth+1, i.formatCharacteristicInfo(&c, f)) + "\n"
	}

	return result
}

func (i *Inspector) formatCharacteristicInfo(c *CharacteristicInfo, f *Formatter) string {
	name := c.Name
	if name == "" {
		name = CharacteristicTypeName(c.Type)
	}

	var valueStr string
	if model.ContainsPerm(c.Perms, model.PermRead) {
		valueStr = f.FormatValue(c.Value, c.Unit)
	} else {
		valueStr = "(write-only)"
	}

	line := fmt.Sprintf("%s = %s", name, valueStr)
	if f.ShowIDs {
		line = fmt.Sprintf("[%d] %s", c.IID, line)
	}
	if f.ShowMetadata {
		line += fmt.Sprintf(" (%s, %s)", c.Format, FormatPerms(c.Perms))
	}
	return line
}
