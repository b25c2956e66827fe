package main

import (
	"encoding/hex"
	"io"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// newLogger logs to w in color when debugging or in development, and as JSON otherwise.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := &slog.LevelVar{}
	if debug {
		level.Set(slog.LevelDebug)
	}

	var handler slog.Handler
	if debug || os.Getenv("ENV") == "development" {
		handler = console.NewHandler(w, &console.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Key = "ts"
				}
				return a
			},
		})
	}
	return slog.New(handler)
}

// loggingBus logs every transaction at debug level.
type loggingBus struct {
	bus drivers.I2C
	log *slog.Logger
}

func (b *loggingBus) Tx(addr uint16, w, r []byte) error {
	err := b.bus.Tx(addr, w, r)
	attrs := []any{"addr", i2c.Addr(addr).String(), "w", hex.EncodeToString(w)}
	if len(r) > 0 {
		attrs = append(attrs, "r", hex.EncodeToString(r))
	}
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	b.log.Debug("i2c tx", attrs...)
	return err
}
