package service

import "time"

// Clock is the source of current time, injectable so expiry logic is testable.
type Clock interface {
	Now() time.Time
}
