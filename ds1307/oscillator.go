package ds1307

// IsRunning reports whether the oscillator is running, that is whether the clock halt bit is clear.
func (d *Device) IsRunning() (bool, error) {
	halted, err := d.flagSet(RegSeconds, flagCH)
	return !halted, err
}

// SetRunning starts the oscillator. Nothing is written if it is already running.
func (d *Device) SetRunning() error {
	return d.clearFlag(RegSeconds, flagCH)
}

// Halt stops the oscillator. The time registers keep their value until it is started again. Nothing is written if it
// is already halted.
func (d *Device) Halt() error {
	return d.setFlag(RegSeconds, flagCH)
}
