package overtime

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DayType selects the OT rate rule for a calendar day.
type DayType int

const (
	Weekday DayType = iota
	Saturday
	Sunday
)

// String returns the lower-case name of the day type.
func (d DayType) String() string {
	switch d {
	case Saturday:
		return "saturday"
	case Sunday:
		return "sunday"
	default:
		return "weekday"
	}
}

// ClassifyDay maps a calendar day to its DayType.
func ClassifyDay(day time.Time) DayType {
	switch day.Weekday() {
	case time.Sunday:
		return Sunday
	case time.Saturday:
		return Saturday
	default:
		return Weekday
	}
}

const (
	// DefaultWeekdayOTStart applies to shifts missing from the weekday table.
	DefaultWeekdayOTStart = 17.5
	// DefaultSaturdayShiftHours applies to shifts missing from the Saturday table.
	DefaultSaturdayShiftHours = 5.0
	// NightAfter is the clock-out hour past which a shift is flagged as night.
	NightAfter = 21.0

	minutesPerDay     = 24 * 60
	minutesPerQuarter = 15
)

// ShiftTables holds the per-shift parameters of the weekday and Saturday rules.
type ShiftTables struct {
	// WeekdayOTStart is the hour of day after which weekday work counts as OT.
	WeekdayOTStart map[string]float64
	// SaturdayShiftHours is the length of the Saturday shift; OT starts after it.
	SaturdayShiftHours map[string]float64
}

// DefaultShiftTables returns the built-in shift tables.
func DefaultShiftTables() ShiftTables {
	return ShiftTables{
		WeekdayOTStart:     map[string]float64{"6:30am": 15.5, "8:30am": 17.5},
		SaturdayShiftHours: map[string]float64{"6:30am": 5, "8:30am": 4},
	}
}

// Merge returns a copy of t with the given overrides applied on top.
func (t ShiftTables) Merge(weekday, saturday map[string]float64) ShiftTables {
	out := ShiftTables{
		WeekdayOTStart:     make(map[string]float64, len(t.WeekdayOTStart)+len(weekday)),
		SaturdayShiftHours: make(map[string]float64, len(t.SaturdayShiftHours)+len(saturday)),
	}
	for k, v := range t.WeekdayOTStart {
		out.WeekdayOTStart[k] = v
	}
	for k, v := range weekday {
		out.WeekdayOTStart[k] = v
	}
	for k, v := range t.SaturdayShiftHours {
		out.SaturdayShiftHours[k] = v
	}
	for k, v := range saturday {
		out.SaturdayShiftHours[k] = v
	}
	return out
}

// WeekdayStart returns the weekday OT start hour for shift.
func (t ShiftTables) WeekdayStart(shift string) float64 {
	if v, ok := t.WeekdayOTStart[shift]; ok {
		return v
	}
	return DefaultWeekdayOTStart
}

// SaturdayHours returns the Saturday shift length for shift.
func (t ShiftTables) SaturdayHours(shift string) float64 {
	if v, ok := t.SaturdayShiftHours[shift]; ok {
		return v
	}
	return DefaultSaturdayShiftHours
}

// FloorToQuarter rounds h down to a multiple of 0.25.
func FloorToQuarter(h float64) float64 {
	return math.Floor(h*4) / 4
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, bool) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hs) == 0 || len(hs) > 2 || len(ms) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// span parses a clock-in/clock-out pair, extending clock-out past midnight
// when it is earlier than clock-in.
func span(in, out string) (int, int, bool) {
	inMin, ok := ParseClock(in)
	if !ok {
		return 0, 0, false
	}
	outMin, ok := ParseClock(out)
	if !ok {
		return 0, 0, false
	}
	if outMin < inMin {
		outMin += minutesPerDay
	}
	return inMin, outMin, true
}

// ComputeNight returns the night flag for a clock-in/clock-out pair.
// The second result is false when either time is missing or malformed.
func ComputeNight(in, out string) (string, bool) {
	_, outMin, ok := span(in, out)
	if !ok {
		return "", false
	}
	if outMin > int(NightAfter*60) {
		return NightYes, true
	}
	return NightNo, true
}

// Calculator computes OT buckets for entries.
type Calculator struct {
	Tables   ShiftTables
	TripleOT DateSet
}

// NewCalculator returns a Calculator using tables and the given triple-OT dates.
func NewCalculator(tables ShiftTables, tripleOT DateSet) Calculator {
	if tripleOT == nil {
		tripleOT = DateSet{}
	}
	return Calculator{Tables: tables, TripleOT: tripleOT}
}

// Compute returns e with normal, double, triple and night filled in.
// An entry without a shift, date, clock-in or clock-out is returned unchanged.
func (c Calculator) Compute(e Entry) Entry {
	if e.Shift == "" {
		return e
	}
	day, ok := e.Day()
	if !ok {
		return e
	}
	inMin, outMin, ok := span(e.InTime, e.OutTime)
	if !ok {
		return e
	}

	var normal, double, triple int
	if c.TripleOT.Contains(day) {
		triple = outMin - inMin
	} else {
		switch ClassifyDay(day) {
		case Weekday:
			normal = outMin - hoursToMinutes(c.Tables.WeekdayStart(e.Shift))
		case Saturday:
			normal = outMin - (inMin + hoursToMinutes(c.Tables.SaturdayHours(e.Shift)))
		case Sunday:
			double = outMin - inMin
		}
	}

	e.NormalOT = quarterHours(normal)
	e.DoubleOT = quarterHours(double)
	e.TripleOT = quarterHours(triple)
	if outMin > int(NightAfter*60) {
		e.Night = NightYes
	} else {
		e.Night = NightNo
	}
	return e
}

// Refresh recomputes what depends on the entry's times. The night flag is
// always refreshed; the OT buckets only when auto is set.
func (c Calculator) Refresh(e Entry, auto bool) Entry {
	if auto {
		return c.Compute(e)
	}
	if night, ok := ComputeNight(e.InTime, e.OutTime); ok {
		e.Night = night
	}
	return e
}

func hoursToMinutes(h float64) int {
	return int(math.Round(h * 60))
}

// quarterHours floors a minute count to whole quarter hours, clamping at zero.
func quarterHours(mins int) float64 {
	if mins <= 0 {
		return 0
	}
	return float64(mins/minutesPerQuarter*minutesPerQuarter) / 60
}
