package poller

import "time"

type Phase string

const (
	// Idle: polling is off. The user is not authenticated yet, or it is disabled.
	Idle Phase = "idle"

	// Polling: the last cycle succeeded.
	Polling Phase = "polling"

	// Backoff: the last cycle failed to load the user.
	Backoff Phase = "backoff"
)

const (
	// Floor is the shortest interval which a succeeding poller narrows to.
	Floor = 5000 * time.Millisecond

	// Ceiling is the longest interval of backoff.
	Ceiling = 60000 * time.Millisecond

	// Step is how much a successful cycle narrows the interval.
	Step = 100 * time.Millisecond

	// FastLoadMargin is added to the last round trip time on fast load.
	FastLoadMargin = 100 * time.Millisecond
)

// Schedule of polling.
//
// Transitions are pure; they return new Schedule and do not modify the receiver.
type Schedule struct {
	Phase    Phase         `json:"phase"`
	Interval time.Duration `json:"interval"`

	// NextLoadAt is when the next cycle is expected.
	NextLoadAt time.Time `json:"nextLoadAt"`
}

// Initial schedule. The first cycle is due at now.
func Initial(now time.Time) Schedule {
	return Schedule{Phase: Idle, Interval: Floor, NextLoadAt: now}
}

// Succeed returns the schedule after a cycle in which the user is loaded.
//
// The interval narrows by Step, not below Floor.
func (s Schedule) Succeed(now time.Time) Schedule {
	interval := s.Interval - Step
	if interval < Floor {
		interval = Floor
	}
	return Schedule{Phase: Polling, Interval: interval, NextLoadAt: now.Add(interval)}
}

// Fail returns the schedule after a cycle failed to load the user.
//
// When now has passed NextLoadAt, the interval doubles up to Ceiling.
// Otherwise (failures before the due time, e.g. fast loads) it is kept.
func (s Schedule) Fail(now time.Time) Schedule {
	interval := s.Interval
	if interval < Floor {
		interval = Floor
	}
	if !now.Before(s.NextLoadAt) {
		interval *= 2
		if Ceiling < interval {
			interval = Ceiling
		}
	}
	return Schedule{Phase: Backoff, Interval: interval, NextLoadAt: now.Add(interval)}
}

// FastLoad returns the schedule loading the next one soon, after rtt+FastLoadMargin.
//
// It is applied once. The next Succeed or Fail goes back to the normal rule.
// Idle and Backoff schedules are not changed, so backoff keeps growing while the user cannot be loaded.
func (s Schedule) FastLoad(rtt time.Duration, now time.Time) Schedule {
	if s.Phase == Idle || s.Phase == Backoff {
		return s
	}
	interval := rtt + FastLoadMargin
	return Schedule{Phase: s.Phase, Interval: interval, NextLoadAt: now.Add(interval)}
}

// Disable polling. The interval is reset to Floor.
func (s Schedule) Disable() Schedule {
	return Schedule{Phase: Idle, Interval: Floor}
}
