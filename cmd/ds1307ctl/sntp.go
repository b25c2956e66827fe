package main

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

// querySNTP asks server for the current time. The result is the local clock corrected by the measured offset, which
// stays correct across NTP era boundaries where the raw transmit timestamp does not.
func querySNTP(server string, timeout time.Duration) (time.Time, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return time.Time{}, err
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, errors.Wrapf(err, "unusable response")
	}
	return time.Now().Add(resp.ClockOffset).UTC(), nil
}
