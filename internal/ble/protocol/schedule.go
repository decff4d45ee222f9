package protocol

import (
	"fmt"
	"time"
)

// TimerSlots is the number of on-device timers.
const TimerSlots = 6

// Slot header bytes; the header is repeated twice at the start of the frame.
var timerHead = [TimerSlots]byte{0x23, 0x25, 0x27, 0x43, 0x45, 0x47}

// Weekdays is a day-of-week bitmask: bit 0 is Sunday, bit 6 Saturday.
type Weekdays uint8

const (
	Sunday Weekdays = 1 << iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday

	EveryDay = Sunday | Monday | Tuesday | Wednesday | Thursday | Friday | Saturday
	Weekend  = Saturday | Sunday
	Workdays = Monday | Tuesday | Wednesday | Thursday | Friday
)

// WeekdayOf returns the bit for a time.Weekday.
func WeekdayOf(d time.Weekday) Weekdays {
	return Weekdays(1) << uint(d)
}

// Has reports whether d is set.
func (w Weekdays) Has(d time.Weekday) bool {
	return w&WeekdayOf(d) != 0
}

// DateTime is the wall-clock value written by EncodeDateTime.
// Weekday follows time.Weekday (0 = Sunday).
type DateTime struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int
}

// DateTimeOf converts t, in its own location, to a DateTime.
func DateTimeOf(t time.Time) DateTime {
	return DateTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: int(t.Weekday()),
	}
}

// Validate range-checks every field. The frame carries a two-digit year
// after a fixed "20" century byte, so Year must be 2000-2099.
func (d DateTime) Validate() error {
	if err := checkRange("year", d.Year, 2000, 2099); err != nil {
		return err
	}
	if err := checkRange("month", d.Month, 1, 12); err != nil {
		return err
	}
	if err := checkRange("day", d.Day, 1, daysIn(d.Year, d.Month)); err != nil {
		return err
	}
	if err := checkRange("hour", d.Hour, 0, 23); err != nil {
		return err
	}
	if err := checkRange("minute", d.Minute, 0, 59); err != nil {
		return err
	}
	if err := checkRange("second", d.Second, 0, 59); err != nil {
		return err
	}
	return checkRange("weekday", d.Weekday, 0, 6)
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EncodeDateTime builds the 11-byte clock frame:
// 10 14 ss mm hh DD MM YY wd 00 00.
func EncodeDateTime(d DateTime) (Command, error) {
	if err := d.Validate(); err != nil {
		return Command{}, err
	}
	return newCommand(TagDateTime,
		dateTimeHead,
		dateTimeCentury,
		byte(d.Second),
		byte(d.Minute),
		byte(d.Hour),
		byte(d.Day),
		byte(d.Month),
		byte(d.Year%100),
		byte(d.Weekday),
		0x00,
		0x00,
	), nil
}

// Timer is one on-device schedule entry. TurnOn selects the action taken
// when the timer fires; Enabled arms or disarms the slot.
type Timer struct {
	Slot    int
	Hour    int
	Minute  int
	Second  int
	Days    Weekdays
	Enabled bool
	TurnOn  bool
}

// Validate range-checks every field.
func (t Timer) Validate() error {
	if err := checkRange("timer slot", t.Slot, 0, TimerSlots-1); err != nil {
		return err
	}
	if err := checkRange("hour", t.Hour, 0, 23); err != nil {
		return err
	}
	if err := checkRange("minute", t.Minute, 0, 59); err != nil {
		return err
	}
	if err := checkRange("second", t.Second, 0, 59); err != nil {
		return err
	}
	if t.Days&^EveryDay != 0 {
		return fmt.Errorf("protocol: weekday mask 0x%02x has bits above Saturday: %w", uint8(t.Days), ErrValidation)
	}
	return nil
}

// EncodeTimer builds the 8-byte timer frame:
// H H valid hh mm ss days action, H being the slot header.
func EncodeTimer(t Timer) (Command, error) {
	if err := t.Validate(); err != nil {
		return Command{}, err
	}
	h := timerHead[t.Slot]
	return newCommand(TagTimer,
		h,
		h,
		flagByte(t.Enabled),
		byte(t.Hour),
		byte(t.Minute),
		byte(t.Second),
		byte(t.Days),
		flagByte(t.TurnOn),
	), nil
}
