package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ajanata/tinygo-drivers/ds1307"
	"github.com/pkg/errors"
)

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int // -1 for no limit
	run     func(a *App, dev *ds1307.Device, args []string) error
}

// commands is filled in by init, since shell refers back to it.
var commands map[string]command

func init() {
	commands = map[string]command{
		"now":     {"", "print the date and time held by the device", 0, 0, cmdNow},
		"set":     {"<RFC3339 time>", "set the date and time", 1, 1, cmdSet},
		"sync":    {"", "set the date and time from the host clock, in UTC", 0, 0, cmdSync},
		"ntp":     {"", "set the date and time from the SNTP server given by -ntp", 0, 0, cmdNTP},
		"get":     {"<field>", "print one field: " + strings.Join(fieldNames(), ", "), 1, 1, cmdGet},
		"put":     {"<field> <value>", "write one field; hours take 13, 1am or 12pm", 2, 2, cmdPut},
		"run":     {"", "start the oscillator", 0, 0, cmdRun},
		"halt":    {"", "stop the oscillator", 0, 0, cmdHalt},
		"status":  {"", "print oscillator and square-wave output state", 0, 0, cmdStatus},
		"sqw":     {"on|off|level <low|high>|rate <1hz|4khz|8khz|32khz>", "configure the square-wave output", 1, 2, cmdSquareWave},
		"ram":     {"read <offset> <n> | write <offset> <hex>", "access the 56 bytes of battery-backed RAM", 3, 3, cmdRAM},
		"shell":   {"", "read commands from stdin, one per line", 0, 0, cmdShell},
		"publish": {"", "publish the time to the MQTT broker given by -broker", 0, 0, cmdPublish},
	}
}

func printCommands(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(w, "  %s %s\n    \t%s\n", name, cmd.usage, cmd.help)
	}
}

func formatDateTime(dt ds1307.DateTime) string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d weekday %d",
		dt.Year, dt.Month, dt.Day, dt.Hour.Hour24(), dt.Minute, dt.Second, dt.Weekday)
	if dt.Hour.Mode() != ds1307.Mode24H {
		s += " (12-hour mode, " + dt.Hour.String() + ")"
	}
	return s
}

func cmdNow(a *App, dev *ds1307.Device, _ []string) error {
	dt, err := dev.DateTime()
	if err != nil {
		return errors.Wrapf(err, "reading date and time")
	}
	fmt.Fprintln(a.out, formatDateTime(dt))
	return nil
}

func cmdSet(a *App, dev *ds1307.Device, args []string) error {
	t, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		return errors.Wrapf(err, "parsing %q", args[0])
	}
	return setTime(a, dev, t)
}

func cmdSync(a *App, dev *ds1307.Device, _ []string) error {
	return setTime(a, dev, a.now().UTC())
}

func cmdNTP(a *App, dev *ds1307.Device, _ []string) error {
	t, err := querySNTP(a.config.NTPServer, a.config.Timeout)
	if err != nil {
		return errors.Wrapf(err, "querying %s", a.config.NTPServer)
	}
	return setTime(a, dev, t.UTC())
}

func setTime(a *App, dev *ds1307.Device, t time.Time) error {
	if err := dev.Set(t); err != nil {
		return errors.Wrapf(err, "setting time to %s", t.Format(time.RFC3339))
	}
	a.log.Info("time set", "time", t.Format(time.RFC3339))
	return nil
}

// field reads or writes one register-backed value as text.
type field struct {
	get func(*ds1307.Device) (string, error)
	put func(*ds1307.Device, string) error
}

func decimalField(get func(*ds1307.Device) (uint8, error), put func(*ds1307.Device, uint8) error) field {
	return field{
		get: func(d *ds1307.Device) (string, error) {
			v, err := get(d)
			return strconv.Itoa(int(v)), err
		},
		put: func(d *ds1307.Device, s string) error {
			v, err := strconv.ParseUint(s, 10, 8)
			if err != nil {
				return errors.Wrapf(err, "parsing %q", s)
			}
			return put(d, uint8(v))
		},
	}
}

var fields = map[string]field{
	"seconds": decimalField((*ds1307.Device).Seconds, (*ds1307.Device).SetSeconds),
	"minutes": decimalField((*ds1307.Device).Minutes, (*ds1307.Device).SetMinutes),
	"weekday": decimalField((*ds1307.Device).Weekday, (*ds1307.Device).SetWeekday),
	"day":     decimalField((*ds1307.Device).Day, (*ds1307.Device).SetDay),
	"month":   decimalField((*ds1307.Device).Month, (*ds1307.Device).SetMonth),
	"hours": {
		get: func(d *ds1307.Device) (string, error) {
			h, err := d.Hours()
			return h.String(), err
		},
		put: func(d *ds1307.Device, s string) error {
			h, err := parseHours(s)
			if err != nil {
				return err
			}
			return d.SetHours(h)
		},
	},
	"year": {
		get: func(d *ds1307.Device) (string, error) {
			y, err := d.Year()
			return strconv.Itoa(int(y)), err
		},
		put: func(d *ds1307.Device, s string) error {
			y, err := strconv.ParseUint(s, 10, 16)
			if err != nil {
				return errors.Wrapf(err, "parsing %q", s)
			}
			return d.SetYear(uint16(y))
		},
	},
}

func fieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupField(name string) (field, error) {
	f, ok := fields[strings.ToLower(name)]
	if !ok {
		return field{}, errors.Errorf("unknown field %q, want one of %s", name, strings.Join(fieldNames(), ", "))
	}
	return f, nil
}

func cmdGet(a *App, dev *ds1307.Device, args []string) error {
	f, err := lookupField(args[0])
	if err != nil {
		return err
	}
	v, err := f.get(dev)
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}
	fmt.Fprintln(a.out, v)
	return nil
}

func cmdPut(a *App, dev *ds1307.Device, args []string) error {
	f, err := lookupField(args[0])
	if err != nil {
		return err
	}
	if err := f.put(dev, args[1]); err != nil {
		return errors.Wrapf(err, "writing %s", args[0])
	}
	a.log.Info("field written", "field", args[0], "value", args[1])
	return nil
}

// parseHours accepts 0-23 for 24-hour mode, or 1-12 followed by am or pm.
func parseHours(s string) (ds1307.Hours, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	mk := ds1307.Hours24
	switch {
	case strings.HasSuffix(s, "am"):
		mk, s = ds1307.HoursAM, strings.TrimSuffix(s, "am")
	case strings.HasSuffix(s, "pm"):
		mk, s = ds1307.HoursPM, strings.TrimSuffix(s, "pm")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return ds1307.Hours{}, errors.Wrapf(err, "parsing hours %q", s)
	}
	return mk(uint8(v)), nil
}

func cmdRun(a *App, dev *ds1307.Device, _ []string) error {
	if err := dev.SetRunning(); err != nil {
		return errors.Wrapf(err, "starting oscillator")
	}
	a.log.Info("oscillator running")
	return nil
}

func cmdHalt(a *App, dev *ds1307.Device, _ []string) error {
	if err := dev.Halt(); err != nil {
		return errors.Wrapf(err, "halting oscillator")
	}
	a.log.Info("oscillator halted")
	return nil
}

func cmdStatus(a *App, dev *ds1307.Device, _ []string) error {
	running, err := dev.IsRunning()
	if err != nil {
		return errors.Wrapf(err, "reading oscillator state")
	}
	hours, err := dev.Hours()
	if err != nil {
		return errors.Wrapf(err, "reading hours")
	}
	enabled, err := dev.SquareWaveOutputEnabled()
	if err != nil {
		return errors.Wrapf(err, "reading square-wave output state")
	}
	level, err := dev.SquareWaveOutputLevel()
	if err != nil {
		return errors.Wrapf(err, "reading output level")
	}
	rate, err := dev.SquareWaveOutputRate()
	if err != nil {
		return errors.Wrapf(err, "reading output rate")
	}

	mode := "24-hour"
	if hours.Mode() != ds1307.Mode24H {
		mode = "12-hour"
	}
	fmt.Fprintf(a.out, "oscillator: %s\n", choose(running, "running", "halted"))
	fmt.Fprintf(a.out, "hour mode:  %s\n", mode)
	fmt.Fprintf(a.out, "sqw output: %s\n", choose(enabled, "enabled", "disabled"))
	fmt.Fprintf(a.out, "sqw level:  %s\n", level)
	fmt.Fprintf(a.out, "sqw rate:   %s\n", rate)
	return nil
}

func choose(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func parseLevel(s string) (ds1307.Level, error) {
	switch strings.ToLower(s) {
	case "low", "0":
		return ds1307.LevelLow, nil
	case "high", "1":
		return ds1307.LevelHigh, nil
	}
	return 0, errors.Errorf("unknown level %q, want low or high", s)
}

func parseRate(s string) (ds1307.Rate, error) {
	switch strings.ToLower(s) {
	case "1hz", "1":
		return ds1307.Rate1Hz, nil
	case "4khz", "4.096khz", "4096":
		return ds1307.Rate4_096kHz, nil
	case "8khz", "8.192khz", "8192":
		return ds1307.Rate8_192kHz, nil
	case "32khz", "32.768khz", "32768":
		return ds1307.Rate32_768kHz, nil
	}
	return 0, errors.Errorf("unknown rate %q, want 1hz, 4khz, 8khz or 32khz", s)
}

func cmdSquareWave(a *App, dev *ds1307.Device, args []string) error {
	var err error
	switch {
	case args[0] == "on" && len(args) == 1:
		err = dev.EnableSquareWaveOutput()
	case args[0] == "off" && len(args) == 1:
		err = dev.DisableSquareWaveOutput()
	case args[0] == "level" && len(args) == 2:
		var l ds1307.Level
		if l, err = parseLevel(args[1]); err != nil {
			return err
		}
		err = dev.SetSquareWaveOutputLevel(l)
	case args[0] == "rate" && len(args) == 2:
		var r ds1307.Rate
		if r, err = parseRate(args[1]); err != nil {
			return err
		}
		err = dev.SetSquareWaveOutputRate(r)
	default:
		return errors.Errorf("usage: sqw %s", commands["sqw"].usage)
	}
	if err != nil {
		return errors.Wrapf(err, "configuring square-wave output")
	}
	a.log.Info("square-wave output updated", "args", strings.Join(args, " "))
	return nil
}

func cmdRAM(a *App, dev *ds1307.Device, args []string) error {
	offset, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return errors.Wrapf(err, "parsing offset %q", args[1])
	}

	switch args[0] {
	case "read":
		n, err := strconv.ParseUint(args[2], 0, 8)
		if err != nil {
			return errors.Wrapf(err, "parsing length %q", args[2])
		}
		buf := make([]byte, n)
		if err := dev.ReadRAM(uint8(offset), buf); err != nil {
			return errors.Wrapf(err, "reading RAM")
		}
		fmt.Fprintln(a.out, hex.EncodeToString(buf))
	case "write":
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return errors.Wrapf(err, "decoding %q", args[2])
		}
		if err := dev.WriteRAM(uint8(offset), data); err != nil {
			return errors.Wrapf(err, "writing RAM")
		}
		a.log.Info("RAM written", "offset", offset, "len", len(data))
	default:
		return errors.Errorf("usage: ram %s", commands["ram"].usage)
	}
	return nil
}
