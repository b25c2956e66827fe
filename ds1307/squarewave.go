package ds1307

// Level is the state of the SQW/OUT pin while the square-wave output is disabled.
type Level uint8

const (
	LevelLow Level = iota
	LevelHigh
)

func (l Level) String() string {
	if l == LevelHigh {
		return "high"
	}
	return "low"
}

// Rate is the frequency of the square-wave output, as selected by the RS1:RS0 bits.
type Rate uint8

const (
	Rate1Hz       Rate = 0b00
	Rate4_096kHz  Rate = 0b01
	Rate8_192kHz  Rate = 0b10
	Rate32_768kHz Rate = 0b11
)

// Frequency returns the output frequency in Hz.
func (r Rate) Frequency() uint32 {
	switch r & maskRS {
	case Rate4_096kHz:
		return 4096
	case Rate8_192kHz:
		return 8192
	case Rate32_768kHz:
		return 32768
	default:
		return 1
	}
}

func (r Rate) String() string {
	switch r & maskRS {
	case Rate4_096kHz:
		return "4.096kHz"
	case Rate8_192kHz:
		return "8.192kHz"
	case Rate32_768kHz:
		return "32.768kHz"
	default:
		return "1Hz"
	}
}

// SquareWaveOutputEnabled reports whether the square-wave output is enabled.
func (d *Device) SquareWaveOutputEnabled() (bool, error) {
	return d.flagSet(RegControl, flagSQWE)
}

// EnableSquareWaveOutput enables the square-wave output. Nothing is written if it is already enabled.
func (d *Device) EnableSquareWaveOutput() error {
	return d.setFlag(RegControl, flagSQWE)
}

// DisableSquareWaveOutput disables the square-wave output. The pin then holds the configured output level. Nothing is
// written if it is already disabled.
func (d *Device) DisableSquareWaveOutput() error {
	return d.clearFlag(RegControl, flagSQWE)
}

// SquareWaveOutputLevel returns the configured output level.
func (d *Device) SquareWaveOutputLevel() (Level, error) {
	high, err := d.flagSet(RegControl, flagOUT)
	if err != nil || !high {
		return LevelLow, err
	}
	return LevelHigh, nil
}

// SetSquareWaveOutputLevel sets the output level. Nothing is written if it is already configured.
func (d *Device) SetSquareWaveOutputLevel(l Level) error {
	if l > LevelHigh {
		return invalid("level %d", l)
	}
	if l == LevelHigh {
		return d.setFlag(RegControl, flagOUT)
	}
	return d.clearFlag(RegControl, flagOUT)
}

// SquareWaveOutputRate returns the configured square-wave rate.
func (d *Device) SquareWaveOutputRate() (Rate, error) {
	data, err := d.readRegister(RegControl)
	if err != nil {
		return Rate1Hz, err
	}
	return Rate(data & maskRS), nil
}

// SetSquareWaveOutputRate sets the square-wave rate, keeping the enable and level bits. Nothing is written if the rate
// is already configured.
func (d *Device) SetSquareWaveOutputRate(r Rate) error {
	if r > Rate32_768kHz {
		return invalid("rate %d", r)
	}
	return d.updateRegister(RegControl, maskRS, uint8(r))
}
