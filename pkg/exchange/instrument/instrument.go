// Package instrument defines the closed set of tradable instruments.
package instrument

// Instrument identifies one of the five tradable flowers. Invalid is the
// sentinel for labels outside the closed set.
type Instrument int8

const (
	Rose Instrument = iota
	Lavender
	Lotus
	Tulip
	Orchid
	Invalid
)

func (i Instrument) String() string {
	switch i {
	case Rose:
		return "Rose"
	case Lavender:
		return "Lavender"
	case Lotus:
		return "Lotus"
	case Tulip:
		return "Tulip"
	case Orchid:
		return "Orchid"
	default:
		return "Invalid"
	}
}

// FromLabel maps an input label to its instrument. Unknown labels map to
// Invalid; the validator turns that into a rejection downstream.
func FromLabel(s string) Instrument {
	switch s {
	case "Rose":
		return Rose
	case "Lavender":
		return Lavender
	case "Lotus":
		return Lotus
	case "Tulip":
		return Tulip
	case "Orchid":
		return Orchid
	default:
		return Invalid
	}
}

// Valid reports whether i is a member of the closed set.
func (i Instrument) Valid() bool {
	return i >= Rose && i <= Orchid
}

// List returns the valid instruments in canonical order. Callers that iterate
// over every book use this so output ordering is deterministic.
func List() []Instrument {
	return []Instrument{Rose, Lavender, Lotus, Tulip, Orchid}
}
