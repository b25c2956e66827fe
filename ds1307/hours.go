package ds1307

import "strconv"

// HourMode selects how an Hours value is interpreted.
type HourMode uint8

const (
	Mode24H HourMode = iota // 0-23
	ModeAM                  // 1-12, before noon
	ModePM                  // 1-12, after noon
)

// Hours is an hour of the day in either 24-hour or 12-hour (AM/PM) form. Reads return the form the chip is currently
// running in, and writing a value switches the chip to that form.
type Hours struct {
	mode  HourMode
	value uint8
}

// Hours24 returns hour h in 24-hour form.
func Hours24(h uint8) Hours { return Hours{Mode24H, h} }

// HoursAM returns hour h (1-12) before noon.
func HoursAM(h uint8) Hours { return Hours{ModeAM, h} }

// HoursPM returns hour h (1-12) after noon.
func HoursPM(h uint8) Hours { return Hours{ModePM, h} }

func (h Hours) Mode() HourMode { return h.mode }

func (h Hours) Value() uint8 { return h.value }

// Hour24 returns the hour on a 0-23 scale. 12 AM is midnight and 12 PM is noon.
func (h Hours) Hour24() uint8 {
	switch h.mode {
	case ModeAM:
		return h.value % 12
	case ModePM:
		return h.value%12 + 12
	default:
		return h.value
	}
}

func (h Hours) String() string {
	switch h.mode {
	case ModeAM:
		return strconv.Itoa(int(h.value)) + "AM"
	case ModePM:
		return strconv.Itoa(int(h.value)) + "PM"
	default:
		return strconv.Itoa(int(h.value))
	}
}

func (h Hours) valid() bool {
	switch h.mode {
	case Mode24H:
		return h.value <= 23
	case ModeAM, ModePM:
		return h.value >= 1 && h.value <= 12
	}
	return false
}

// encode returns the hours register byte for h.
func (h Hours) encode() (uint8, error) {
	if !h.valid() {
		return 0, invalid("hours %s", h)
	}
	switch h.mode {
	case ModeAM:
		return flagH12 | decToBcd(h.value), nil
	case ModePM:
		return flagH12 | flagPM | decToBcd(h.value), nil
	default:
		return decToBcd(h.value), nil
	}
}

// decodeHours interprets an hours register byte according to its mode bit.
func decodeHours(data uint8) Hours {
	if data&flagH12 == 0 {
		return Hours24(bcdToDec(data & maskHours24))
	}
	if data&flagPM == 0 {
		return HoursAM(bcdToDec(data & maskHours12))
	}
	return HoursPM(bcdToDec(data & maskHours12))
}
