package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers/tester"
)

func TestNewLoggerJSON(t *testing.T) {
	c := qt.New(t)
	c.Setenv("ENV", "")
	var buf bytes.Buffer
	log := newLogger(&buf, false)

	log.Debug("hidden")
	log.Info("shown", "n", 1)

	var entry map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &entry), qt.IsNil)
	c.Assert(entry["msg"], qt.Equals, "shown")
	c.Assert(entry["ts"], qt.Not(qt.IsNil))
	c.Assert(entry["time"], qt.IsNil)
}

func TestLoggingBus(t *testing.T) {
	c := qt.New(t)
	bus := tester.NewI2CBus(c)
	fake := bus.NewDevice(0x68)
	fake.Registers[0x07] = 0x93

	var buf bytes.Buffer
	lb := &loggingBus{
		bus: bus,
		log: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}

	r := make([]byte, 1)
	c.Assert(lb.Tx(0x68, []byte{0x07}, r), qt.IsNil)
	c.Assert(r[0], qt.Equals, uint8(0x93))

	var entry map[string]any
	c.Assert(json.Unmarshal(buf.Bytes(), &entry), qt.IsNil)
	c.Assert(entry["msg"], qt.Equals, "i2c tx")
	c.Assert(entry["addr"], qt.Equals, "0x68")
	c.Assert(entry["w"], qt.Equals, "07")
	c.Assert(entry["r"], qt.Equals, "93")

	buf.Reset()
	fake.Err = errors.New("nack")
	c.Assert(lb.Tx(0x68, []byte{0x07, 0x00}, nil), qt.ErrorIs, fake.Err)
	c.Assert(buf.String(), qt.Contains, `"err":"nack"`)
}
