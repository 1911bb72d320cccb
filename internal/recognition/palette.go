package recognition

import "unicode/utf8"

// Kind is the color class of a recognized symbol.
type Kind int

const (
	KindDefault Kind = iota
	KindEquals
	KindNumber
	KindLetter
)

// Palette maps symbol kinds to stroke colors.
type Palette struct {
	Default string `yaml:"default"`
	Equals  string `yaml:"equals"`
	Number  string `yaml:"number"`
	Letter  string `yaml:"letter"`
}

// DefaultPalette follows the OneNote ink colors.
var DefaultPalette = Palette{
	Default: "#000000",
	Equals:  "#fdbf14",
	Number:  "#004e8a",
	Letter:  "#008b3a",
}

// Classify returns the kind of a recognized symbol. Only "=" and single ASCII
// digits or letters get their own color.
func Classify(symbol string) Kind {
	if symbol == "=" {
		return KindEquals
	}
	if utf8.RuneCountInString(symbol) != 1 {
		return KindDefault
	}
	c := symbol[0]
	switch {
	case c >= '0' && c <= '9':
		return KindNumber
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return KindLetter
	}
	return KindDefault
}

// Color returns the palette entry for kind, falling back to the default
// palette for empty entries.
func (p Palette) Color(kind Kind) string {
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	switch kind {
	case KindEquals:
		return pick(p.Equals, DefaultPalette.Equals)
	case KindNumber:
		return pick(p.Number, DefaultPalette.Number)
	case KindLetter:
		return pick(p.Letter, DefaultPalette.Letter)
	}
	return pick(p.Default, DefaultPalette.Default)
}

// ColorFor classifies symbol and returns its color.
func (p Palette) ColorFor(symbol string) string {
	return p.Color(Classify(symbol))
}
