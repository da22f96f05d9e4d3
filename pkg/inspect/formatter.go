package inspect

import (
	"fmt"
	"strings"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes format and permission information
	ShowMetadata bool

	// ShowIDs includes instance IDs alongside names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      false,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats a value for display, including unit suffixes.
func (f *Formatter) FormatValue(value any, unit model.Unit) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return fmt.Sprintf("%q", v)

	case int64:
		return f.formatIntWithUnit(v, unit)

	case int32:
		return f.formatIntWithUnit(int64(v), unit)

	case int:
		return f.formatIntWithUnit(int64(v), unit)

	case uint64:
		return f.formatIntWithUnit(int64(v), unit)

	case uint32:
		return f.formatIntWithUnit(int64(v), unit)

	case uint16:
		return f.formatIntWithUnit(int64(v), unit)

	case uint8:
		return f.formatIntWithUnit(int64(v), unit)

	case float64:
		return f.formatFloatWithUnit(v, unit)

	case float32:
		return f.formatFloatWithUnit(float64(v), unit)

	case []byte:
		return fmt.Sprintf("0x%x", v)

	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatIntWithUnit formats an integer with its unit suffix.
func (f *Formatter) formatIntWithUnit(v int64, unit model.Unit) string {
	switch unit {
	case model.UnitCelsius:
		return fmt.Sprintf("%d °C", v)
	case model.UnitPercentage:
		return fmt.Sprintf("%d%%", v)
	case model.UnitArcDegrees:
		return fmt.Sprintf("%d°", v)
	case model.UnitLux:
		return fmt.Sprintf("%d lx", v)
	case model.UnitSeconds:
		return fmt.Sprintf("%d s", v)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// formatFloatWithUnit formats a float with its unit suffix. Temperatures
// keep one decimal, everything else two.
func (f *Formatter) formatFloatWithUnit(v float64, unit model.Unit) string {
	switch unit {
	case model.UnitCelsius:
		return fmt.Sprintf("%.1f °C", v)
	case model.UnitPercentage:
		return fmt.Sprintf("%.1f%%", v)
	case model.UnitArcDegrees:
		return fmt.Sprintf("%.1f°", v)
	case model.UnitLux:
		return fmt.Sprintf("%.1f lx", v)
	case model.UnitSeconds:
		return fmt.Sprintf("%.1f s", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPerms formats a permission list for display.
func FormatPerms(perms []model.Perm) string {
	if len(perms) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",")
}

// FormatHeatingCoolingState formats a heating cooling state value.
func FormatHeatingCoolingState(state int64) string {
	switch state {
	case 0:
		return "OFF"
	case 1:
		return "HEAT"
	case 2:
		return "COOL"
	case 3:
		return "AUTO"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", state)
	}
}

// FormatTemperatureDisplayUnits formats a display unit selector value.
func FormatTemperatureDisplayUnits(units int64) string {
	switch units {
	case 0:
		return "CELSIUS"
	case 1:
		return "FAHRENHEIT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", units)
	}
}

// FormatCategory formats an accessory category for display.
func FormatCategory(c model.Category) string {
	return c.String()
}

// CharacteristicRow represents a formatted characteristic for display.
type CharacteristicRow struct {
	IID    uint64
	Name   string
	Value  string
	Format string
	Perms  string
}

// FormatCharacteristicTable formats a list of characteristics as a table.
func (f *Formatter) FormatCharacteristicTable(rows []CharacteristicRow) string {
	if len(rows) == 0 {
		return "  (no characteristics)"
	}

	var sb strings.Builder
	for _, row := range rows {
		if f.ShowIDs {
			sb.WriteString(fmt.Sprintf("  [%d] %s: %s", row.IID, row.Name, row.Value))
		} else {
			sb.WriteString(fmt.Sprintf("  %s: %s", row.Name, row.Value))
		}
		if f.ShowMetadata && row.Format != "" {
			sb.WriteString(fmt.Sprintf(" (%s, %s)", row.Format, row.Perms))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
