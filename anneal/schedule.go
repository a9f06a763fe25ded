package anneal

// Schedule tracks one annealing run's temperature, cooling geometrically
// each step and supporting a reheat back toward (a fraction of) the
// initial temperature when the search has stagnated.
type Schedule struct {
	cfg  Config
	temp float64
}

// NewSchedule starts a schedule at cfg.InitialTemp.
func NewSchedule(cfg Config) *Schedule {
	return &Schedule{cfg: cfg, temp: cfg.InitialTemp}
}

// Temp returns the current temperature.
func (s *Schedule) Temp() float64 {
	return s.temp
}

// Cool advances the schedule one step, floored at cfg.MinTemp.
func (s *Schedule) Cool() {
	s.temp *= s.cfg.CoolingRate
	if s.temp < s.cfg.MinTemp {
		s.temp = s.cfg.MinTemp
	}
}

// Done reports whether the schedule has cooled to its floor.
func (s *Schedule) Done() bool {
	return s.temp <= s.cfg.MinTemp
}

// Reheat raises the temperature to min(initialTemp/2, 3*current), the
// schedule's stagnation-recovery rule: a bounded jump back up that still
// scales with how cold the run currently is, so a reheat late in a cold
// run doesn't overshoot all the way back to the start.
func (s *Schedule) Reheat() {
	target := 3 * s.temp
	half := s.cfg.InitialTemp / 2
	if half < target {
		target = half
	}
	if target > s.temp {
		s.temp = target
	}
}

// Reset restarts the schedule at the initial temperature, for a fresh
// restart run.
func (s *Schedule) Reset() {
	s.temp = s.cfg.InitialTemp
}
