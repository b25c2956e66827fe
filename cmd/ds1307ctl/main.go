// Command ds1307ctl reads and configures a DS1307 real-time clock attached to a Linux I2C bus.
package main

import (
	"os"
)

func main() {
	app := NewApp(parseArgs())
	if err := app.Run(); err != nil {
		app.log.Error("ds1307ctl failed", "err", err)
		os.Exit(1)
	}
}
