package css_lexer

// DimensionUnit enumerates every dimension unit the lexer recognises on its
// fast path. A dimension token whose unit matches one of these stores the
// enum value directly instead of the unit's byte length, which lets the
// parser compare units without touching the source text.
type DimensionUnit uint8

const (
	UnitUnknown DimensionUnit = iota
	UnitPercent

	// Font-relative lengths
	UnitCap
	UnitCh
	UnitEm
	UnitEx
	UnitIc
	UnitLh
	UnitRcap
	UnitRch
	UnitRem
	UnitRex
	UnitRic
	UnitRlh

	// Viewport-relative lengths
	UnitVh
	UnitVw
	UnitVmin
	UnitVmax
	UnitVb
	UnitVi
	UnitSvh
	UnitSvw
	UnitSvmin
	UnitSvmax
	UnitLvh
	UnitLvw
	UnitLvmin
	UnitLvmax
	UnitDvh
	UnitDvw
	UnitDvmin
	UnitDvmax

	// Container-relative lengths
	UnitCqw
	UnitCqh
	UnitCqi
	UnitCqb
	UnitCqmin
	UnitCqmax

	// Absolute lengths
	UnitPx
	UnitCm
	UnitMm
	UnitQ
	UnitIn
	UnitPc
	UnitPt

	// Angles
	UnitDeg
	UnitGrad
	UnitRad
	UnitTurn

	// Durations
	UnitS
	UnitMs

	// Frequencies
	UnitHz
	UnitKhz

	// Resolutions
	UnitDpi
	UnitDpcm
	UnitDppx
	UnitX

	// Flex
	UnitFr
)

var unitToString = [...]string{
	UnitUnknown: "",
	UnitPercent: "%",
	UnitCap:     "cap",
	UnitCh:      "ch",
	UnitEm:      "em",
	UnitEx:      "ex",
	UnitIc:      "ic",
	UnitLh:      "lh",
	UnitRcap:    "rcap",
	UnitRch:     "rch",
	UnitRem:     "rem",
	UnitRex:     "rex",
	UnitRic:     "ric",
	UnitRlh:     "rlh",
	UnitVh:      "vh",
	UnitVw:      "vw",
	UnitVmin:    "vmin",
	UnitVmax:    "vmax",
	UnitVb:      "vb",
	UnitVi:      "vi",
	UnitSvh:     "svh",
	UnitSvw:     "svw",
	UnitSvmin:   "svmin",
	UnitSvmax:   "svmax",
	UnitLvh:     "lvh",
	UnitLvw:     "lvw",
	UnitLvmin:   "lvmin",
	UnitLvmax:   "lvmax",
	UnitDvh:     "dvh",
	UnitDvw:     "dvw",
	UnitDvmin:   "dvmin",
	UnitDvmax:   "dvmax",
	UnitCqw:     "cqw",
	UnitCqh:     "cqh",
	UnitCqi:     "cqi",
	UnitCqb:     "cqb",
	UnitCqmin:   "cqmin",
	UnitCqmax:   "cqmax",
	UnitPx:      "px",
	UnitCm:      "cm",
	UnitMm:      "mm",
	UnitQ:       "q",
	UnitIn:      "in",
	UnitPc:      "pc",
	UnitPt:      "pt",
	UnitDeg:     "deg",
	UnitGrad:    "grad",
	UnitRad:     "rad",
	UnitTurn:    "turn",
	UnitS:       "s",
	UnitMs:      "ms",
	UnitHz:      "hz",
	UnitKhz:     "khz",
	UnitDpi:     "dpi",
	UnitDpcm:    "dpcm",
	UnitDppx:    "dppx",
	UnitX:       "x",
	UnitFr:      "fr",
}

func (u DimensionUnit) String() string {
	if int(u) < len(unitToString) {
		return unitToString[u]
	}
	return ""
}

func (u DimensionUnit) IsLength() bool {
	return u >= UnitCap && u <= UnitPt
}

func (u DimensionUnit) IsAngle() bool {
	return u >= UnitDeg && u <= UnitTurn
}

func (u DimensionUnit) IsDuration() bool {
	return u == UnitS || u == UnitMs
}

func (u DimensionUnit) IsFrequency() bool {
	return u == UnitHz || u == UnitKhz
}

func (u DimensionUnit) IsResolution() bool {
	return u >= UnitDpi && u <= UnitX
}

func (u DimensionUnit) IsFlex() bool {
	return u == UnitFr
}

// MatchDimensionUnit recognises a unit case-insensitively without allocating.
// The match is organised by length first so the common units are a handful
// of byte comparisons. Escaped units never reach this function; the lexer
// only calls it for escape-free ident sequences.
func MatchDimensionUnit(unit string) DimensionUnit {
	switch len(unit) {
	case 1:
		switch lower(unit[0]) {
		case '%':
			return UnitPercent
		case 'q':
			return UnitQ
		case 's':
			return UnitS
		case 'x':
			return UnitX
		}

	case 2:
		switch [2]byte{lower(unit[0]), lower(unit[1])} {
		case [2]byte{'c', 'h'}:
			return UnitCh
		case [2]byte{'c', 'm'}:
			return UnitCm
		case [2]byte{'e', 'm'}:
			return UnitEm
		case [2]byte{'e', 'x'}:
			return UnitEx
		case [2]byte{'f', 'r'}:
			return UnitFr
		case [2]byte{'h', 'z'}:
			return UnitHz
		case [2]byte{'i', 'c'}:
			return UnitIc
		case [2]byte{'i', 'n'}:
			return UnitIn
		case [2]byte{'l', 'h'}:
			return UnitLh
		case [2]byte{'m', 'm'}:
			return UnitMm
		case [2]byte{'m', 's'}:
			return UnitMs
		case [2]byte{'p', 'c'}:
			return UnitPc
		case [2]byte{'p', 't'}:
			return UnitPt
		case [2]byte{'p', 'x'}:
			return UnitPx
		case [2]byte{'v', 'b'}:
			return UnitVb
		case [2]byte{'v', 'h'}:
			return UnitVh
		case [2]byte{'v', 'i'}:
			return UnitVi
		case [2]byte{'v', 'w'}:
			return UnitVw
		}

	case 3:
		switch [3]byte{lower(unit[0]), lower(unit[1]), lower(unit[2])} {
		case [3]byte{'c', 'a', 'p'}:
			return UnitCap
		case [3]byte{'c', 'q', 'b'}:
			return UnitCqb
		case [3]byte{'c', 'q', 'h'}:
			return UnitCqh
		case [3]byte{'c', 'q', 'i'}:
			return UnitCqi
		case [3]byte{'c', 'q', 'w'}:
			return UnitCqw
		case [3]byte{'d', 'e', 'g'}:
			return UnitDeg
		case [3]byte{'d', 'p', 'i'}:
			return UnitDpi
		case [3]byte{'d', 'v', 'h'}:
			return UnitDvh
		case [3]byte{'d', 'v', 'w'}:
			return UnitDvw
		case [3]byte{'k', 'h', 'z'}:
			return UnitKhz
		case [3]byte{'l', 'v', 'h'}:
			return UnitLvh
		case [3]byte{'l', 'v', 'w'}:
			return UnitLvw
		case [3]byte{'r', 'a', 'd'}:
			return UnitRad
		case [3]byte{'r', 'c', 'h'}:
			return UnitRch
		case [3]byte{'r', 'e', 'm'}:
			return UnitRem
		case [3]byte{'r', 'e', 'x'}:
			return UnitRex
		case [3]byte{'r', 'i', 'c'}:
			return UnitRic
		case [3]byte{'r', 'l', 'h'}:
			return UnitRlh
		case [3]byte{'s', 'v', 'h'}:
			return UnitSvh
		case [3]byte{'s', 'v', 'w'}:
			return UnitSvw
		}

	case 4:
		switch [4]byte{lower(unit[0]), lower(unit[1]), lower(unit[2]), lower(unit[3])} {
		case [4]byte{'d', 'p', 'c', 'm'}:
			return UnitDpcm
		case [4]byte{'d', 'p', 'p', 'x'}:
			return UnitDppx
		case [4]byte{'g', 'r', 'a', 'd'}:
			return UnitGrad
		case [4]byte{'r', 'c', 'a', 'p'}:
			return UnitRcap
		case [4]byte{'t', 'u', 'r', 'n'}:
			return UnitTurn
		case [4]byte{'v', 'm', 'a', 'x'}:
			return UnitVmax
		case [4]byte{'v', 'm', 'i', 'n'}:
			return UnitVmin
		}

	case 5:
		switch [5]byte{lower(unit[0]), lower(unit[1]), lower(unit[2]), lower(unit[3]), lower(unit[4])} {
		case [5]byte{'c', 'q', 'm', 'a', 'x'}:
			return UnitCqmax
		case [5]byte{'c', 'q', 'm', 'i', 'n'}:
			return UnitCqmin
		case [5]byte{'d', 'v', 'm', 'a', 'x'}:
			return UnitDvmax
		case [5]byte{'d', 'v', 'm', 'i', 'n'}:
			return UnitDvmin
		case [5]byte{'l', 'v', 'm', 'a', 'x'}:
			return UnitLvmax
		case [5]byte{'l', 'v', 'm', 'i', 'n'}:
			return UnitLvmin
		case [5]byte{'s', 'v', 'm', 'a', 'x'}:
			return UnitSvmax
		case [5]byte{'s', 'v', 'm', 'i', 'n'}:
			return UnitSvmin
		}
	}

	return UnitUnknown
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}
	return c
}
