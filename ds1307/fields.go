package ds1307

// Seconds returns the seconds (0-59), ignoring the clock halt bit.
func (d *Device) Seconds() (uint8, error) {
	data, err := d.readRegister(RegSeconds)
	if err != nil {
		return 0, err
	}
	return bcdToDec(data &^ flagCH), nil
}

// SetSeconds sets the seconds (0-59). The clock halt bit is left as it is.
func (d *Device) SetSeconds(s uint8) error {
	if s > 59 {
		return invalid("seconds %d", s)
	}
	data, err := d.readRegister(RegSeconds)
	if err != nil {
		return err
	}
	return d.writeRegister(RegSeconds, encodeSeconds(s, data))
}

// Minutes returns the minutes (0-59).
func (d *Device) Minutes() (uint8, error) {
	return d.readDecimal(RegMinutes)
}

// SetMinutes sets the minutes (0-59).
func (d *Device) SetMinutes(m uint8) error {
	if m > 59 {
		return invalid("minutes %d", m)
	}
	return d.writeDecimal(RegMinutes, m)
}

// Hours returns the hours in the form the chip is running in.
func (d *Device) Hours() (Hours, error) {
	data, err := d.readRegister(RegHours)
	if err != nil {
		return Hours{}, err
	}
	return decodeHours(data), nil
}

// SetHours sets the hours. This also switches the chip between 12-hour and 24-hour mode to match h.
func (d *Device) SetHours(h Hours) error {
	data, err := h.encode()
	if err != nil {
		return err
	}
	return d.writeRegister(RegHours, data)
}

// Weekday returns the day of the week (1-7). Which day is 1 is up to the user.
func (d *Device) Weekday() (uint8, error) {
	return d.readRegister(RegWeekday)
}

// SetWeekday sets the day of the week (1-7).
func (d *Device) SetWeekday(w uint8) error {
	if w < 1 || w > 7 {
		return invalid("weekday %d", w)
	}
	return d.writeRegister(RegWeekday, w)
}

// Day returns the day of the month (1-31).
func (d *Device) Day() (uint8, error) {
	return d.readDecimal(RegDay)
}

// SetDay sets the day of the month (1-31). It is not checked against the length of the current month.
func (d *Device) SetDay(day uint8) error {
	if day < 1 || day > 31 {
		return invalid("day %d", day)
	}
	return d.writeDecimal(RegDay, day)
}

// Month returns the month (1-12).
func (d *Device) Month() (uint8, error) {
	return d.readDecimal(RegMonth)
}

// SetMonth sets the month (1-12).
func (d *Device) SetMonth(m uint8) error {
	if m < 1 || m > 12 {
		return invalid("month %d", m)
	}
	return d.writeDecimal(RegMonth, m)
}

// Year returns the year (2000-2099).
func (d *Device) Year() (uint16, error) {
	y, err := d.readDecimal(RegYear)
	if err != nil {
		return 0, err
	}
	return 2000 + uint16(y), nil
}

// SetYear sets the year (2000-2099).
func (d *Device) SetYear(y uint16) error {
	if y < 2000 || y > 2099 {
		return invalid("year %d", y)
	}
	return d.writeDecimal(RegYear, uint8(y-2000))
}

// encodeSeconds returns the seconds register byte for s, carrying over the clock halt bit from current.
func encodeSeconds(s, current uint8) uint8 {
	return current&flagCH | decToBcd(s)
}
