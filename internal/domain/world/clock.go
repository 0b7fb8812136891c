package world

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

// ClockConfig describes the in-game day cycle in world minutes.
type ClockConfig struct {
	DayMinutes   int
	NightMinutes int
	// StartOffset shifts minute zero into the cycle, e.g. 360 starts at 06:00.
	StartOffset int
}

type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.DayMinutes <= 0 {
		cfg.DayMinutes = 16 * 60
	}
	if cfg.NightMinutes <= 0 {
		cfg.NightMinutes = 8 * 60
	}
	if cfg.StartOffset < 0 {
		cfg.StartOffset = 0
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

func (c Clock) CycleMinutes() int {
	return c.cfg.DayMinutes + c.cfg.NightMinutes
}

// PhaseAt returns the phase at the given world minute and the minutes left
// until the phase switches.
func (c Clock) PhaseAt(worldMinutes int64) (Phase, int) {
	total := int64(c.CycleMinutes())
	if total <= 0 {
		return PhaseDay, 0
	}
	elapsed := worldMinutes + int64(c.cfg.StartOffset)
	if elapsed < 0 {
		elapsed = 0
	}
	offset := elapsed % total
	if offset < int64(c.cfg.DayMinutes) {
		return PhaseDay, int(int64(c.cfg.DayMinutes) - offset)
	}
	nightOffset := offset - int64(c.cfg.DayMinutes)
	return PhaseNight, int(int64(c.cfg.NightMinutes) - nightOffset)
}

// DayNumber is 1-based.
func (c Clock) DayNumber(worldMinutes int64) int {
	total := int64(c.CycleMinutes())
	if total <= 0 || worldMinutes < 0 {
		return 1
	}
	return int((worldMinutes+int64(c.cfg.StartOffset))/total) + 1
}
