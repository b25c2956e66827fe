package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ajanata/tinygo-drivers/ds1307"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// App runs one command against a DS1307.
type App struct {
	config *Config
	log    *slog.Logger
	in     io.Reader
	out    io.Writer
	now    func() time.Time
	dial   func(*Config) (publisher, error)
}

// NewApp creates a new application instance using the given configuration.
func NewApp(c *Config) *App {
	return &App{
		config: c,
		log:    newLogger(os.Stderr, c.Debug),
		in:     os.Stdin,
		out:    os.Stdout,
		now:    time.Now,
		dial:   dialMQTT,
	}
}

// Run opens the I2C bus and runs the configured command.
func (a *App) Run() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrapf(err, "host.Init failed")
	}

	bus, err := i2creg.Open(a.config.Bus)
	if err != nil {
		return errors.Wrapf(err, "opening I2C bus %q failed", a.config.Bus)
	}
	defer bus.Close()

	dev := ds1307.New(&loggingBus{bus: bus, log: a.log})
	dev.Configure(ds1307.Config{Address: a.config.Address})
	defer dev.Release()

	a.log.Debug("device ready", "bus", bus.String(), "addr", dev.Address)
	return a.exec(dev, a.config.Args)
}

// exec runs args[0] with the remaining arguments.
func (a *App) exec(dev *ds1307.Device, args []string) error {
	if len(args) == 0 {
		return errors.New("missing command")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errors.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 < cmd.minArgs || (cmd.maxArgs >= 0 && len(args)-1 > cmd.maxArgs) {
		return errors.Errorf("usage: %s %s", args[0], cmd.usage)
	}
	return cmd.run(a, dev, args[1:])
}
