package ds1307

// Address is the fixed 7-bit I2C address of the DS1307.
const Address = 0x68

// Registers
const (
	RegSeconds  = 0x00 // Seconds, also holds the clock halt bit
	RegMinutes  = 0x01 // Minutes
	RegHours    = 0x02 // Hours and 12/24-hour mode
	RegWeekday  = 0x03 // Day of the week, 1-7
	RegDay      = 0x04 // Day of the month
	RegMonth    = 0x05 // Month
	RegYear     = 0x06 // Year, offset from 2000
	RegControl  = 0x07 // Square-wave output control
	RegRAMBegin = 0x08 // First byte of battery-backed user RAM
	RegRAMEnd   = 0x3F // Last byte of battery-backed user RAM
)

// RAMSize is the number of bytes in the user RAM window.
const RAMSize = RegRAMEnd - RegRAMBegin + 1

// Bit flags
const (
	flagCH      = 0b1000_0000 // seconds: clock halt
	flagH12     = 0b0100_0000 // hours: 12-hour mode when set
	flagPM      = 0b0010_0000 // hours: PM when set, 12-hour mode only
	flagOUT     = 0b1000_0000 // control: output level while square wave is disabled
	flagSQWE    = 0b0001_0000 // control: square-wave output enable
	maskRS      = 0b0000_0011 // control: rate select RS1:RS0
	maskHours24 = 0b0011_1111
	maskHours12 = 0b0001_1111
)
