package services

import "time"

// Clock supplies "now" to services so derivations can be tested at fixed dates.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func (c Clock) stamp() string { return c.now().UTC().Format(time.RFC3339) }
