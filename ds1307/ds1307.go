// Package ds1307 implements a driver for the DS1307 Real-Time Clock (RTC). It covers the whole register map: the
// calendar registers in both 12-hour and 24-hour mode, the clock halt bit, the square-wave output and the 56 bytes of
// battery-backed user RAM.
//
// Every call goes to the bus; nothing is cached between calls. Writes that would not change a register are skipped.
//
// Datasheet: https://datasheets.maximintegrated.com/en/ds/DS1307.pdf
package ds1307

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

var (
	// ErrInvalidInput is returned when a value is out of range for its field, or when the clock holds a date that
	// does not exist. Nothing is sent to the bus when an input is rejected.
	ErrInvalidInput = errors.New("ds1307: invalid input data")

	// ErrReleased is returned by every method once Release has been called.
	ErrReleased = errors.New("ds1307: device released")
)

type Device struct {
	bus     drivers.I2C
	Address uint16
}

type Config struct {
	Address uint8
}

// New creates a new driver on the specified preconfigured I2C bus. The DS1307 supports standard mode (100 kHz) only.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure applies c. The DS1307 address is fixed, so Address only needs setting when the chip sits behind an
// address translator.
func (d *Device) Configure(c Config) {
	if c.Address == 0 {
		c.Address = Address
	}

	d.Address = uint16(c.Address)
}

// Release returns the underlying bus. The device cannot be used afterwards.
func (d *Device) Release() drivers.I2C {
	bus := d.bus
	d.bus = nil
	return bus
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

func (d *Device) read(reg uint8, buf []byte) error {
	if d.bus == nil {
		return ErrReleased
	}
	return d.bus.Tx(d.Address, []byte{reg}, buf)
}

// write sends reg followed by data in a single transaction.
func (d *Device) write(reg uint8, data ...byte) error {
	if d.bus == nil {
		return ErrReleased
	}
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)
	return d.bus.Tx(d.Address, buf, nil)
}

func (d *Device) readRegister(reg uint8) (uint8, error) {
	buf := [1]byte{}
	err := d.read(reg, buf[:])
	return buf[0], err
}

func (d *Device) writeRegister(reg, val uint8) error {
	return d.write(reg, val)
}

func (d *Device) readDecimal(reg uint8) (uint8, error) {
	data, err := d.readRegister(reg)
	if err != nil {
		return 0, err
	}
	return bcdToDec(data), nil
}

func (d *Device) writeDecimal(reg, dec uint8) error {
	return d.writeRegister(reg, decToBcd(dec))
}

// flagSet reports whether any bit of mask is set in reg.
func (d *Device) flagSet(reg, mask uint8) (bool, error) {
	data, err := d.readRegister(reg)
	if err != nil {
		return false, err
	}
	return data&mask != 0, nil
}

// updateRegister replaces the bits of reg selected by mask with value. The register is not written if those bits
// already hold value.
func (d *Device) updateRegister(reg, mask, value uint8) error {
	data, err := d.readRegister(reg)
	if err != nil {
		return err
	}
	if data&mask == value&mask {
		return nil
	}
	return d.writeRegister(reg, data&^mask|value&mask)
}

func (d *Device) setFlag(reg, mask uint8) error {
	return d.updateRegister(reg, mask, mask)
}

func (d *Device) clearFlag(reg, mask uint8) error {
	return d.updateRegister(reg, mask, 0)
}

// bcdToDec converts packed BCD to decimal
func bcdToDec(bcd uint8) uint8 {
	return (bcd>>4)*10 + bcd&0x0F
}

// decToBcd converts decimal to packed BCD
func decToBcd(dec uint8) uint8 {
	return (dec/10)<<4 | dec%10
}
