package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hap-protocol/hap-go/pkg/model"
)

//go:embed types.yaml
var typesYAML []byte

// Registry errors.
var (
	ErrUnknownCharacteristic = errors.New("unknown characteristic tag")
	ErrUnknownService        = errors.New("unknown service tag")
)

type characteristicDef struct {
	Tag         string    `yaml:"tag"`
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Format      string    `yaml:"format"`
	Unit        string    `yaml:"unit"`
	Perms       []string  `yaml:"perms"`
	Min         *float64  `yaml:"min"`
	Max         *float64  `yaml:"max"`
	Step        *float64  `yaml:"step"`
	ValidValues []float64 `yaml:"valid-values"`
}

func (d characteristicDef) props() model.Props {
	p := model.Props{
		Format:      model.Format(d.Format),
		Unit:        model.Unit(d.Unit),
		MinValue:    d.Min,
		MaxValue:    d.Max,
		MinStep:     d.Step,
		ValidValues: d.ValidValues,
	}
	for _, perm := range d.Perms {
		p.Perms = append(p.Perms, model.Perm(perm))
	}
	return p
}

type serviceDef struct {
	Tag      string   `yaml:"tag"`
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Required []string `yaml:"required"`
	Optional []string `yaml:"optional"`
}

type catalog struct {
	Characteristics []characteristicDef `yaml:"characteristics"`
	Services        []serviceDef        `yaml:"services"`
}

var (
	characteristicsByTag map[string]characteristicDef
	servicesByTag        map[string]serviceDef
)

func init() {
	var c catalog
	if err := yaml.Unmarshal(typesYAML, &c); err != nil {
		panic(fmt.Sprintf("registry: parsing embedded catalog: %v", err))
	}

	characteristicsByTag = make(map[string]characteristicDef, len(c.Characteristics))
	for _, def := range c.Characteristics {
		if err := validateCharacteristicDef(def); err != nil {
			panic(fmt.Sprintf("registry: characteristic %q: %v", def.Tag, err))
		}
		if _, exists := characteristicsByTag[def.Tag]; exists {
			panic(fmt.Sprintf("registry: duplicate characteristic tag %q", def.Tag))
		}
		characteristicsByTag[def.Tag] = def
	}

	servicesByTag = make(map[string]serviceDef, len(c.Services))
	for _, def := range c.Services {
		if err := validateServiceDef(def); err != nil {
			panic(fmt.Sprintf("registry: service %q: %v", def.Tag, err))
		}
		if _, exists := servicesByTag[def.Tag]; exists {
			panic(fmt.Sprintf("registry: duplicate service tag %q", def.Tag))
		}
		servicesByTag[def.Tag] = def
	}
}

func validateCharacteristicDef(def characteristicDef) error {
	if def.Tag == "" || def.Name == "" {
		return errors.New("missing tag or name")
	}
	if _, err := model.NormalizeUUID(def.Type); err != nil {
		return err
	}
	if !model.Format(def.Format).IsValid() {
		return fmt.Errorf("invalid format %q", def.Format)
	}
	for _, perm := range def.Perms {
		switch model.Perm(perm) {
		case model.PermRead, model.PermWrite, model.PermEvents, model.PermHidden:
		default:
			return fmt.Errorf("invalid perm %q", perm)
		}
	}
	return nil
}

func validateServiceDef(def serviceDef) error {
	if def.Tag == "" || def.Name == "" {
		return errors.New("missing tag or name")
	}
	if _, err := model.NormalizeUUID(def.Type); err != nil {
		return err
	}
	for _, tag := range def.Required {
		if _, ok := characteristicsByTag[tag]; !ok {
			return fmt.Errorf("unresolved required characteristic %q", tag)
		}
	}
	for _, tag := range def.Optional {
		if _, ok := characteristicsByTag[tag]; !ok {
			return fmt.Errorf("unresolved optional characteristic %q", tag)
		}
	}
	return nil
}

// CharacteristicBlueprint carries the identity of a catalog characteristic
// type and constructs fresh instances of it.
type CharacteristicBlueprint struct {
	def characteristicDef
}

var _ model.CharacteristicBlueprint = CharacteristicBlueprint{}

// Tag returns the catalog tag.
func (b CharacteristicBlueprint) Tag() string {
	return b.def.Tag
}

// Name returns the display name instances of this type carry.
func (b CharacteristicBlueprint) Name() string {
	return b.def.Name
}

// Type returns the normalized type UUID.
func (b CharacteristicBlueprint) Type() string {
	return model.MustUUID(b.def.Type)
}

// NewCharacteristic builds a fresh characteristic from the definition.
func (b CharacteristicBlueprint) NewCharacteristic() (*model.Characteristic, error) {
	return model.NewCharacteristic(b.def.Name, b.def.Type, b.def.props())
}

// ServiceBlueprint carries the identity of a catalog service type and
// constructs fresh instances of it.
type ServiceBlueprint struct {
	def serviceDef
}

// Tag returns the catalog tag.
func (b ServiceBlueprint) Tag() string {
	return b.def.Tag
}

// Name returns the display name instances of this type carry.
func (b ServiceBlueprint) Name() string {
	return b.def.Name
}

// Type returns the normalized type UUID.
func (b ServiceBlueprint) Type() string {
	return model.MustUUID(b.def.Type)
}

// RequiredCharacteristics returns the blueprints of the characteristics a
// service of this type must carry.
func (b ServiceBlueprint) RequiredCharacteristics() []CharacteristicBlueprint {
	return blueprintsForTags(b.def.Required)
}

// OptionalCharacteristics returns the blueprints of the characteristics a
// service of this type may carry beyond the required set.
func (b ServiceBlueprint) OptionalCharacteristics() []CharacteristicBlueprint {
	return blueprintsForTags(b.def.Optional)
}

func blueprintsForTags(tags []string) []CharacteristicBlueprint {
	out := make([]CharacteristicBlueprint, 0, len(tags))
	for _, tag := range tags {
		// Catalog validation resolved these tags at init.
		out = append(out, CharacteristicBlueprint{def: characteristicsByTag[tag]})
	}
	return out
}

// NewService builds a fresh service from the definition: required
// characteristics active, optional ones registered as templates.
func (b ServiceBlueprint) NewService(subtype string) (*model.Service, error) {
	s, err := model.NewService(b.def.Name, b.def.Type, subtype)
	if err != nil {
		return nil, err
	}
	for _, tag := range b.def.Required {
		c, err := NewCharacteristic(tag)
		if err != nil {
			return nil, err
		}
		if err := s.AddCharacteristic(c); err != nil {
			return nil, err
		}
	}
	for _, tag := range b.def.Optional {
		c, err := NewCharacteristic(tag)
		if err != nil {
			return nil, err
		}
		s.AddOptionalCharacteristic(c)
	}
	return s, nil
}

// Characteristic looks up the blueprint for a characteristic tag.
func Characteristic(tag string) (CharacteristicBlueprint, error) {
	def, ok := characteristicsByTag[tag]
	if !ok {
		return CharacteristicBlueprint{}, fmt.Errorf("%w: %q", ErrUnknownCharacteristic, tag)
	}
	return CharacteristicBlueprint{def: def}, nil
}

// Service looks up the blueprint for a service tag.
func Service(tag string) (ServiceBlueprint, error) {
	def, ok := servicesByTag[tag]
	if !ok {
		return ServiceBlueprint{}, fmt.Errorf("%w: %q", ErrUnknownService, tag)
	}
	return ServiceBlueprint{def: def}, nil
}

// CharacteristicByType looks up the blueprint owning the given type UUID.
// The UUID may be in short form.
func CharacteristicByType(typeUUID string) (CharacteristicBlueprint, bool) {
	normalized, err := model.NormalizeUUID(typeUUID)
	if err != nil {
		return CharacteristicBlueprint{}, false
	}
	for _, def := range characteristicsByTag {
		if model.MustUUID(def.Type) == normalized {
			return CharacteristicBlueprint{def: def}, true
		}
	}
	return CharacteristicBlueprint{}, false
}

// ServiceByType looks up the blueprint owning the given type UUID. The UUID
// may be in short form.
func ServiceByType(typeUUID string) (ServiceBlueprint, bool) {
	normalized, err := model.NormalizeUUID(typeUUID)
	if err != nil {
		return ServiceBlueprint{}, false
	}
	for _, def := range servicesByTag {
		if model.MustUUID(def.Type) == normalized {
			return ServiceBlueprint{def: def}, true
		}
	}
	return ServiceBlueprint{}, false
}

// NewCharacteristic builds a fresh characteristic for tag.
func NewCharacteristic(tag string) (*model.Characteristic, error) {
	b, err := Characteristic(tag)
	if err != nil {
		return nil, err
	}
	return b.NewCharacteristic()
}

// NewService builds a fresh service for tag with no subtype.
func NewService(tag string) (*model.Service, error) {
	return NewServiceWithSubtype(tag, "")
}

// NewServiceWithSubtype builds a fresh service for tag with the given
// subtype, for accessories carrying several services of the same type.
func NewServiceWithSubtype(tag, subtype string) (*model.Service, error) {
	b, err := Service(tag)
	if err != nil {
		return nil, err
	}
	return b.NewService(subtype)
}

// CharacteristicType returns the normalized type UUID for a characteristic tag.
func CharacteristicType(tag string) (string, error) {
	b, err := Characteristic(tag)
	if err != nil {
		return "", err
	}
	return b.Type(), nil
}

// MustCharacteristicType is like CharacteristicType but panics on unknown
// tags. Use with the generated tag constants.
func MustCharacteristicType(tag string) string {
	typ, err := CharacteristicType(tag)
	if err != nil {
		panic(err)
	}
	return typ
}

// ServiceType returns the normalized type UUID for a service tag.
func ServiceType(tag string) (string, error) {
	b, err := Service(tag)
	if err != nil {
		return "", err
	}
	return b.Type(), nil
}

// MustServiceType is like ServiceType but panics on unknown tags. Use with
// the generated tag constants.
func MustServiceType(tag string) string {
	typ, err := ServiceType(tag)
	if err != nil {
		panic(err)
	}
	return typ
}

// CharacteristicTags lists all characteristic tags in sorted order.
func CharacteristicTags() []string {
	tags := make([]string, 0, len(characteristicsByTag))
	for tag := range characteristicsByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ServiceTags lists all service tags in sorted order.
func ServiceTags() []string {
	tags := make([]string, 0, len(servicesByTag))
	for tag := range servicesByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
