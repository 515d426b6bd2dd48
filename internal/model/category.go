package model

// Category is one of the six fixed component categories.
type Category string

const (
	// CategoryResistor holds resistors and resistor networks.
	CategoryResistor Category = "RESISTOR"
	// CategoryCapacitor holds capacitors of any dielectric.
	CategoryCapacitor Category = "CAPACITOR"
	// CategoryDiode holds rectifier and signal diodes.
	CategoryDiode Category = "DIODE"
	// CategoryIC holds integrated circuits and regulators.
	CategoryIC Category = "IC"
	// CategoryTransistors holds BJTs and FETs.
	CategoryTransistors Category = "TRANSISTORS"
	// CategoryOther is the default bucket for everything else.
	CategoryOther Category = "OTHER COMPONENTS"
)

// Categories lists all categories in report column order.
var Categories = []Category{
	CategoryResistor,
	CategoryCapacitor,
	CategoryDiode,
	CategoryIC,
	CategoryTransistors,
	CategoryOther,
}

// Valid reports whether c is one of the six fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
