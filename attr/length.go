package attr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"golang.org/x/image/math/fixed"
)

type Unit uint8

const (
	// UnitNone marks plain number, a multiple of some base value.
	UnitNone Unit = iota
	UnitEm
	UnitEx
	UnitPx
	UnitIn
	UnitCm
	UnitMm
	UnitPt
	UnitPc
	UnitPercent
)

var unitNames = map[string]Unit{
	"":   UnitNone,
	"em": UnitEm,
	"ex": UnitEx,
	"px": UnitPx,
	"in": UnitIn,
	"cm": UnitCm,
	"mm": UnitMm,
	"pt": UnitPt,
	"pc": UnitPc,
	"%":  UnitPercent,
}

func (u Unit) String() string {
	for k, v := range unitNames {
		if v == u {
			return k
		}
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// Length is number with unit.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// named math spaces in ems
var namedSpaces = map[string]float64{
	"veryverythinmathspace":          1.0 / 18,
	"verythinmathspace":              2.0 / 18,
	"thinmathspace":                  3.0 / 18,
	"mediummathspace":                4.0 / 18,
	"thickmathspace":                 5.0 / 18,
	"verythickmathspace":             6.0 / 18,
	"veryverythickmathspace":         7.0 / 18,
	"negativeveryverythinmathspace":  -1.0 / 18,
	"negativeverythinmathspace":      -2.0 / 18,
	"negativethinmathspace":          -3.0 / 18,
	"negativemediummathspace":        -4.0 / 18,
	"negativethickmathspace":         -5.0 / 18,
	"negativeverythickmathspace":     -6.0 / 18,
	"negativeveryverythickmathspace": -7.0 / 18,
}

// ParseLength parses number with optional unit or named math space.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if v, ok := namedSpaces[s]; ok {
		return Length{Value: v, Unit: UnitEm}, nil
	}
	b := []byte(s)
	sign := 1.0
	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		if b[0] == '-' {
			sign = -1
		}
		b = b[1:]
	}
	num, unit := parse.Dimension(b)
	if num == 0 || num+unit != len(b) {
		return Length{}, fmt.Errorf("malformed length %q", s)
	}
	v, err := strconv.ParseFloat(string(b[:num]), 64)
	if err != nil {
		return Length{}, fmt.Errorf("malformed length %q: %w", s, err)
	}
	u, ok := unitNames[strings.ToLower(string(b[num:]))]
	if !ok {
		return Length{}, fmt.Errorf("unknown unit in length %q", s)
	}
	return Length{Value: sign * v, Unit: u}, nil
}

// Metrics supplies font dependent units for length resolution.
type Metrics struct {
	Em fixed.Int26_6
	Ex fixed.Int26_6
	// Base is what plain numbers and percentages multiply.
	Base fixed.Int26_6
}

const pointsPerInch = 72

// Resolve converts length to distance. Absolute units assume one point per
// scalar unit.
func (l Length) Resolve(m Metrics) fixed.Int26_6 {
	var v float64
	switch l.Unit {
	case UnitNone:
		v = l.Value * float64(m.Base)
	case UnitPercent:
		v = l.Value / 100 * float64(m.Base)
	case UnitEm:
		v = l.Value * float64(m.Em)
	case UnitEx:
		v = l.Value * float64(m.Ex)
	case UnitPx, UnitPt:
		v = l.Value * 64
	case UnitIn:
		v = l.Value * pointsPerInch * 64
	case UnitCm:
		v = l.Value * pointsPerInch / 2.54 * 64
	case UnitMm:
		v = l.Value * pointsPerInch / 25.4 * 64
	case UnitPc:
		v = l.Value * 12 * 64
	}
	return fixed.Int26_6(math.Round(v))
}
