package ds1307

import "time"

// DateTime is a snapshot of all seven calendar registers.
type DateTime struct {
	Year    uint16 // 2000-2099
	Month   uint8  // 1-12
	Day     uint8  // 1-31
	Weekday uint8  // 1-7, numbering is up to the user
	Hour    Hours
	Minute  uint8 // 0-59
	Second  uint8 // 0-59
}

// Date is the calendar part of a DateTime.
type Date struct {
	Year    uint16
	Month   uint8
	Day     uint8
	Weekday uint8
}

// TimeOfDay is the clock part of a DateTime.
type TimeOfDay struct {
	Hour   Hours
	Minute uint8
	Second uint8
}

// DateTimeOf converts t to a DateTime in 24-hour form, numbering weekdays from Sunday = 1.
func DateTimeOf(t time.Time) DateTime {
	return DateTime{
		Year:    uint16(t.Year()),
		Month:   uint8(t.Month()),
		Day:     uint8(t.Day()),
		Weekday: uint8(t.Weekday()) + 1,
		Hour:    Hours24(uint8(t.Hour())),
		Minute:  uint8(t.Minute()),
		Second:  uint8(t.Second()),
	}
}

// Time converts dt to a time.Time in loc. The weekday is not used.
func (dt DateTime) Time(loc *time.Location) (time.Time, error) {
	if err := dt.checkCalendar(); err != nil {
		return time.Time{}, err
	}
	return time.Date(int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(dt.Hour.Hour24()), int(dt.Minute), int(dt.Second), 0, loc), nil
}

// Date returns the calendar part of dt.
func (dt DateTime) Date() Date {
	return Date{Year: dt.Year, Month: dt.Month, Day: dt.Day, Weekday: dt.Weekday}
}

// TimeOfDay returns the clock part of dt.
func (dt DateTime) TimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second}
}

func (dt DateTime) validate() error {
	if err := dt.Date().validate(); err != nil {
		return err
	}
	return dt.TimeOfDay().validate()
}

// checkCalendar checks that dt names a real point in time. Unlike validate it ignores the weekday.
func (dt DateTime) checkCalendar() error {
	if err := dt.Date().checkCalendar(); err != nil {
		return err
	}
	return dt.TimeOfDay().validate()
}

// encode returns the seven calendar register bytes for dt, keeping the clock halt bit of seconds.
func (dt DateTime) encode(seconds uint8) ([7]byte, error) {
	var buf [7]byte
	clock, err := dt.TimeOfDay().encode(seconds)
	if err != nil {
		return buf, err
	}
	date, err := dt.Date().encode()
	if err != nil {
		return buf, err
	}
	copy(buf[:3], clock[:])
	copy(buf[3:], date[:])
	return buf, nil
}

func decodeDateTime(buf [7]byte) DateTime {
	var clock [3]byte
	var date [4]byte
	copy(clock[:], buf[:3])
	copy(date[:], buf[3:])
	t := decodeTimeOfDay(clock)
	c := decodeDate(date)
	return DateTime{
		Year:    c.Year,
		Month:   c.Month,
		Day:     c.Day,
		Weekday: c.Weekday,
		Hour:    t.Hour,
		Minute:  t.Minute,
		Second:  t.Second,
	}
}

func (c Date) validate() error {
	if err := c.checkRanges(); err != nil {
		return err
	}
	if c.Weekday < 1 || c.Weekday > 7 {
		return invalid("weekday %d", c.Weekday)
	}
	return nil
}

func (c Date) checkRanges() error {
	switch {
	case c.Year < 2000 || c.Year > 2099:
		return invalid("year %d", c.Year)
	case c.Month < 1 || c.Month > 12:
		return invalid("month %d", c.Month)
	case c.Day < 1 || c.Day > 31:
		return invalid("day %d", c.Day)
	}
	return nil
}

// checkCalendar rejects dates that do not exist, such as February 30. The weekday is not checked.
func (c Date) checkCalendar() error {
	if err := c.checkRanges(); err != nil {
		return err
	}
	t := time.Date(int(c.Year), time.Month(c.Month), int(c.Day), 0, 0, 0, 0, time.UTC)
	if t.Day() != int(c.Day) {
		return invalid("date %04d-%02d-%02d does not exist", c.Year, c.Month, c.Day)
	}
	return nil
}

func (c Date) encode() ([4]byte, error) {
	if err := c.validate(); err != nil {
		return [4]byte{}, err
	}
	return [4]byte{
		c.Weekday,
		decToBcd(c.Day),
		decToBcd(c.Month),
		decToBcd(uint8(c.Year - 2000)),
	}, nil
}

func decodeDate(buf [4]byte) Date {
	return Date{
		Year:    2000 + uint16(bcdToDec(buf[3])),
		Month:   bcdToDec(buf[2]),
		Day:     bcdToDec(buf[1]),
		Weekday: buf[0],
	}
}

func (t TimeOfDay) validate() error {
	switch {
	case t.Second > 59:
		return invalid("seconds %d", t.Second)
	case t.Minute > 59:
		return invalid("minutes %d", t.Minute)
	case !t.Hour.valid():
		return invalid("hours %s", t.Hour)
	}
	return nil
}

func (t TimeOfDay) encode(seconds uint8) ([3]byte, error) {
	if err := t.validate(); err != nil {
		return [3]byte{}, err
	}
	hours, err := t.Hour.encode()
	if err != nil {
		return [3]byte{}, err
	}
	return [3]byte{
		encodeSeconds(t.Second, seconds),
		decToBcd(t.Minute),
		hours,
	}, nil
}

func decodeTimeOfDay(buf [3]byte) TimeOfDay {
	return TimeOfDay{
		Hour:   decodeHours(buf[2]),
		Minute: bcdToDec(buf[1]),
		Second: bcdToDec(buf[0] &^ flagCH),
	}
}

// DateTime reads all calendar registers in a single transaction. A date that cannot exist, such as February 30,
// returns ErrInvalidInput. The weekday is returned as stored, even when it is outside 1-7.
func (d *Device) DateTime() (DateTime, error) {
	var buf [7]byte
	err := d.read(RegSeconds, buf[:])
	if err != nil {
		return DateTime{}, err
	}
	dt := decodeDateTime(buf)
	if err := dt.checkCalendar(); err != nil {
		return DateTime{}, err
	}
	return dt, nil
}

// SetDateTime writes all calendar registers in a single transaction, so the clock cannot tick between fields. Every
// field is checked before anything is sent. The day is not checked against the length of the month. The clock halt
// bit is left as it is.
func (d *Device) SetDateTime(dt DateTime) error {
	if err := dt.validate(); err != nil {
		return err
	}
	seconds, err := d.readRegister(RegSeconds)
	if err != nil {
		return err
	}
	buf, err := dt.encode(seconds)
	if err != nil {
		return err
	}
	return d.write(RegSeconds, buf[:]...)
}

// Date reads the weekday, day, month and year registers in a single transaction.
func (d *Device) Date() (Date, error) {
	var buf [4]byte
	err := d.read(RegWeekday, buf[:])
	if err != nil {
		return Date{}, err
	}
	c := decodeDate(buf)
	if err := c.checkCalendar(); err != nil {
		return Date{}, err
	}
	return c, nil
}

// SetDate writes the weekday, day, month and year registers in a single transaction.
func (d *Device) SetDate(c Date) error {
	buf, err := c.encode()
	if err != nil {
		return err
	}
	return d.write(RegWeekday, buf[:]...)
}

// TimeOfDay reads the seconds, minutes and hours registers in a single transaction.
func (d *Device) TimeOfDay() (TimeOfDay, error) {
	var buf [3]byte
	err := d.read(RegSeconds, buf[:])
	if err != nil {
		return TimeOfDay{}, err
	}
	t := decodeTimeOfDay(buf)
	if err := t.validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// SetTimeOfDay writes the seconds, minutes and hours registers in a single transaction. The clock halt bit is left
// as it is.
func (d *Device) SetTimeOfDay(t TimeOfDay) error {
	if err := t.validate(); err != nil {
		return err
	}
	seconds, err := d.readRegister(RegSeconds)
	if err != nil {
		return err
	}
	buf, err := t.encode(seconds)
	if err != nil {
		return err
	}
	return d.write(RegSeconds, buf[:]...)
}

// Now returns the current date and time as a UTC time.Time.
func (d *Device) Now() (time.Time, error) {
	dt, err := d.DateTime()
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(time.UTC)
}

// Set sets the date and time from t and switches the chip to 24-hour mode. Weekdays are numbered from Sunday = 1.
// Only the wall-clock fields of t are used; convert it to the desired location first.
func (d *Device) Set(t time.Time) error {
	if t.Year() < 2000 || t.Year() > 2099 {
		return invalid("year %d", t.Year())
	}
	return d.SetDateTime(DateTimeOf(t))
}
