package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ajanata/tinygo-drivers/ds1307"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
)

// Config defines program configuration.
type Config struct {
	Bus       string        // I2C bus name as known to periph, empty for the first one.
	Address   uint8         // Device address.
	Debug     bool          // Log every bus transaction.
	Broker    string        // MQTT broker URL for publish.
	Topic     string        // MQTT topic for publish.
	ClientID  string        // MQTT client ID for publish.
	Interval  time.Duration // Time between two publish readings.
	Count     int           // Number of publish readings, 0 for no limit.
	NTPServer string        // host:port of the SNTP server used by ntp.
	Timeout   time.Duration // Network timeout for ntp and publish.
	Args      []string      // Command and its arguments.
}

func defaultConfig() Config {
	return Config{
		Bus:       os.Getenv("DS1307CTL_BUS"),
		Address:   ds1307.Address,
		Broker:    "tcp://localhost:1883",
		Topic:     "ds1307/time",
		ClientID:  "ds1307ctl",
		Interval:  time.Second,
		NTPServer: "pool.ntp.org:123",
		Timeout:   5 * time.Second,
	}
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	c, err := parseFlags(fs, os.Args[1:], os.Stdout)
	if err == errVersion {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(1)
	}
	return c
}

var errVersion = errors.New("version requested")

func parseFlags(fs *flag.FlagSet, args []string, out io.Writer) (*Config, error) {
	c := defaultConfig()
	addr := i2c.Addr(c.Address)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s [options] <command> [arguments]\n\nCommands:\n", fs.Name())
		printCommands(fs.Output())
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	fs.StringVar(&c.Bus, "bus", c.Bus, "I2C bus to open, e.g. /dev/i2c-1 or 1. Defaults to $DS1307CTL_BUS or the first bus.")
	fs.Var(&addr, "addr", "I2C address of the DS1307.")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Log every I2C transaction.")
	fs.StringVar(&c.Broker, "broker", c.Broker, "MQTT broker for the publish command.")
	fs.StringVar(&c.Topic, "topic", c.Topic, "MQTT topic for the publish command.")
	fs.StringVar(&c.ClientID, "client-id", c.ClientID, "MQTT client ID for the publish command.")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "Time between two readings of the publish command.")
	fs.IntVar(&c.Count, "count", c.Count, "Number of readings to publish, 0 for no limit.")
	fs.StringVar(&c.NTPServer, "ntp", c.NTPServer, "SNTP server for the ntp command.")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Network timeout.")

	version := fs.Bool("version", false, "Display version information.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *version {
		fmt.Fprintln(out, Version())
		return nil, errVersion
	}

	if fs.NArg() == 0 {
		return nil, errors.New("missing command")
	}
	if addr > 0x7F {
		return nil, errors.Errorf("address %s is not a 7-bit address", addr)
	}
	if c.Interval <= 0 {
		return nil, errors.Errorf("interval must be positive, got %s", c.Interval)
	}

	c.Address = uint8(addr)
	c.Args = fs.Args()
	return &c, nil
}
