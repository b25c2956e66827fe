package ds1307

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

var testTime = time.Date(2023, time.September, 12, 22, 35, 50, 0, time.UTC)

func TestDateTime(t *testing.T) {
	c := qt.New(t)
	dev, fake, rec := newDevice(c)
	copy(fake.Registers[RegSeconds:], []byte{
		0b1101_1000, 0b0101_1001, 0b0010_0011, 0b0000_0010,
		0b0001_0011, 0b0000_1000, 0b0001_1000,
	})

	dt, err := dev.DateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt, qt.Equals, DateTime{
		Year:    2018,
		Month:   8,
		Day:     13,
		Weekday: 2,
		Hour:    Hours24(23),
		Minute:  59,
		Second:  58,
	})
	c.Assert(rec.log, qt.HasLen, 1)
	c.Assert(rec.log[0].w, qt.DeepEquals, []byte{RegSeconds})
	c.Assert(rec.log[0].n, qt.Equals, 7)
}

func TestDateTimeIn12HourMode(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)
	copy(fake.Registers[RegSeconds:], []byte{0x05, 0x30, 0b0111_0001, 3, 0x01, 0x02, 0x24})

	dt, err := dev.DateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt.Hour, qt.Equals, HoursPM(11))

	now, err := dev.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(now, qt.Equals, time.Date(2024, time.February, 1, 23, 30, 5, 0, time.UTC))
}

func TestDateTimeRejectsImpossibleDate(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)
	// 2019-02-30
	copy(fake.Registers[RegSeconds:], []byte{0x00, 0x00, 0x12, 1, 0x30, 0x02, 0x19})

	_, err := dev.DateTime()
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	_, err = dev.Now()
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	_, err = dev.Date()
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
}

func TestDateTimeRejectsOutOfRangeRegisters(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)
	// month 13
	copy(fake.Registers[RegSeconds:], []byte{0x00, 0x00, 0x12, 1, 0x01, 0x13, 0x19})
	_, err := dev.DateTime()
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	// 12-hour mode, hour 0
	copy(fake.Registers[RegSeconds:], []byte{0x00, 0x00, 0b0100_0000, 1, 0x01, 0x01, 0x19})
	_, err = dev.DateTime()
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
}

func TestDateTimeKeepsStoredWeekday(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)
	// 2019-02-28 12:00:00, weekday never set
	copy(fake.Registers[RegSeconds:], []byte{0x00, 0x00, 0x12, 0, 0x28, 0x02, 0x19})

	dt, err := dev.DateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(dt.Weekday, qt.Equals, uint8(0))
	c.Assert(dt.Day, qt.Equals, uint8(28))

	date, err := dev.Date()
	c.Assert(err, qt.IsNil)
	c.Assert(date.Weekday, qt.Equals, uint8(0))

	now, err := dev.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(now, qt.Equals, time.Date(2019, 2, 28, 12, 0, 0, 0, time.UTC))

	// writing it back still requires a weekday in range
	c.Assert(dev.SetDateTime(dt), qt.ErrorIs, ErrInvalidInput)
}

func TestSetDateTime(t *testing.T) {
	c := qt.New(t)
	dev, fake, rec := newDevice(c)
	fake.Registers[RegSeconds] = 0b1101_1000

	err := dev.SetDateTime(DateTime{
		Year:    2099,
		Month:   12,
		Day:     31,
		Weekday: 7,
		Hour:    Hours24(23),
		Minute:  59,
		Second:  58,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(rec.reads(), qt.Equals, 1)
	c.Assert(rec.writes(), qt.DeepEquals, [][]byte{{
		RegSeconds,
		0b1101_1000, 0b0101_1001, 0b0010_0011, 0b0000_0111,
		0b0011_0001, 0b0001_0010, 0b1001_1001,
	}})
}

func TestSetDateTimeMatchesFieldWrites(t *testing.T) {
	c := qt.New(t)
	dt := DateTime{
		Year:    2031,
		Month:   4,
		Day:     30,
		Weekday: 3,
		Hour:    HoursPM(8),
		Minute:  7,
		Second:  45,
	}

	combined, cfake, _ := newDevice(c)
	cfake.Registers[RegSeconds] = flagCH
	c.Assert(combined.SetDateTime(dt), qt.IsNil)

	fields, ffake, _ := newDevice(c)
	ffake.Registers[RegSeconds] = flagCH
	c.Assert(fields.SetSeconds(dt.Second), qt.IsNil)
	c.Assert(fields.SetMinutes(dt.Minute), qt.IsNil)
	c.Assert(fields.SetHours(dt.Hour), qt.IsNil)
	c.Assert(fields.SetWeekday(dt.Weekday), qt.IsNil)
	c.Assert(fields.SetDay(dt.Day), qt.IsNil)
	c.Assert(fields.SetMonth(dt.Month), qt.IsNil)
	c.Assert(fields.SetYear(dt.Year), qt.IsNil)

	c.Assert(cfake.Registers[:RegControl], qt.DeepEquals, ffake.Registers[:RegControl])

	got, err := combined.DateTime()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, dt)
}

func TestSetDateTimeRejectsBeforeBusTraffic(t *testing.T) {
	valid := DateTime{Year: 2020, Month: 1, Day: 1, Weekday: 1, Hour: Hours24(0)}
	tests := []struct {
		name   string
		modify func(*DateTime)
	}{
		{"year 1999", func(dt *DateTime) { dt.Year = 1999 }},
		{"year 2100", func(dt *DateTime) { dt.Year = 2100 }},
		{"month 0", func(dt *DateTime) { dt.Month = 0 }},
		{"month 13", func(dt *DateTime) { dt.Month = 13 }},
		{"day 0", func(dt *DateTime) { dt.Day = 0 }},
		{"day 32", func(dt *DateTime) { dt.Day = 32 }},
		{"weekday 0", func(dt *DateTime) { dt.Weekday = 0 }},
		{"weekday 8", func(dt *DateTime) { dt.Weekday = 8 }},
		{"hour 24", func(dt *DateTime) { dt.Hour = Hours24(24) }},
		{"hour 0am", func(dt *DateTime) { dt.Hour = HoursAM(0) }},
		{"hour 13pm", func(dt *DateTime) { dt.Hour = HoursPM(13) }},
		{"minute 60", func(dt *DateTime) { dt.Minute = 60 }},
		{"second 60", func(dt *DateTime) { dt.Second = 60 }},
	}
	c := qt.New(t)
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			dev, _, rec := newDevice(c)
			dt := valid
			test.modify(&dt)
			c.Assert(dev.SetDateTime(dt), qt.ErrorIs, ErrInvalidInput)
			c.Assert(rec.log, qt.HasLen, 0)
		})
	}
}

func TestSetDateTimeAllowsDayPastMonthEnd(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)
	err := dev.SetDateTime(DateTime{Year: 2021, Month: 2, Day: 31, Weekday: 1, Hour: Hours24(0)})
	c.Assert(err, qt.IsNil)
	c.Assert(fake.Registers[RegDay], qt.Equals, uint8(0x31))
}

func TestSetAndNow(t *testing.T) {
	c := qt.New(t)
	dev, fake, _ := newDevice(c)

	c.Assert(dev.Set(testTime), qt.IsNil)
	c.Assert(fake.Registers[RegSeconds:RegControl], qt.DeepEquals,
		[]uint8{0x50, 0x35, 0x22, 3, 0x12, 0x09, 0x23})

	now, err := dev.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(now, qt.Equals, testTime)

	c.Assert(dev.Set(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)), qt.ErrorIs, ErrInvalidInput)
	c.Assert(dev.Set(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)), qt.ErrorIs, ErrInvalidInput)
}

func TestDateAndTimeOfDay(t *testing.T) {
	c := qt.New(t)
	dev, fake, rec := newDevice(c)
	fake.Registers[RegSeconds] = flagCH

	c.Assert(dev.SetDate(Date{Year: 2024, Month: 2, Day: 29, Weekday: 5}), qt.IsNil)
	c.Assert(dev.SetTimeOfDay(TimeOfDay{Hour: HoursAM(6), Minute: 15, Second: 9}), qt.IsNil)
	c.Assert(rec.writes(), qt.DeepEquals, [][]byte{
		{RegWeekday, 5, 0x29, 0x02, 0x24},
		{RegSeconds, flagCH | 0x09, 0x15, 0b0100_0110},
	})

	date, err := dev.Date()
	c.Assert(err, qt.IsNil)
	c.Assert(date, qt.Equals, Date{Year: 2024, Month: 2, Day: 29, Weekday: 5})

	tod, err := dev.TimeOfDay()
	c.Assert(err, qt.IsNil)
	c.Assert(tod, qt.Equals, TimeOfDay{Hour: HoursAM(6), Minute: 15, Second: 9})

	c.Assert(dev.SetDate(Date{Year: 2024, Month: 13, Day: 1, Weekday: 1}), qt.ErrorIs, ErrInvalidInput)
	c.Assert(dev.SetTimeOfDay(TimeOfDay{Hour: Hours24(0), Minute: 60}), qt.ErrorIs, ErrInvalidInput)
	c.Assert(rec.writes(), qt.HasLen, 2)
}

func TestDateTimeOf(t *testing.T) {
	c := qt.New(t)
	dt := DateTimeOf(testTime)
	c.Assert(dt, qt.Equals, DateTime{
		Year:    2023,
		Month:   9,
		Day:     12,
		Weekday: 3, // Tuesday
		Hour:    Hours24(22),
		Minute:  35,
		Second:  50,
	})

	back, err := dt.Time(time.UTC)
	c.Assert(err, qt.IsNil)
	c.Assert(back, qt.Equals, testTime)

	dt.Day = 31
	_, err = dt.Time(time.UTC)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
}
