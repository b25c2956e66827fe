package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ajanata/tinygo-drivers/ds1307"
	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// cmdShell runs one command per input line until EOF, exit or quit.
// A failing command is reported and the shell carries on.
func cmdShell(a *App, dev *ds1307.Device, _ []string) error {
	s := bufio.NewScanner(a.in)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		case "shell":
			fmt.Fprintln(a.out, "error: already in a shell")
			continue
		}

		if err := a.exec(dev, args); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
	return errors.Wrapf(s.Err(), "reading commands")
}
