package view

import (
	"errors"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/keystone-apparel/keystone/internal/sale"
)

// Timeframe is a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeToday     Timeframe = 0
	TimeframeThisWeek  Timeframe = 1
	TimeframeThisMonth Timeframe = 2
	TimeframeLastMonth Timeframe = 3
	TimeframeAll       Timeframe = 4
	TimeframeCustom    Timeframe = 5
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeToday:
		return "Today"
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// timeframeRange returns the half-open range [start, end) in loc. Weeks start on Monday.
func timeframeRange(tf Timeframe, now time.Time, loc *time.Location) (time.Time, time.Time) {
	today := sale.StartOfDay(now, loc)

	switch tf {
	case TimeframeThisWeek:
		offset := int(today.Weekday())
		if offset == 0 {
			offset = 7
		}

		start := today.AddDate(0, 0, -offset+1)

		return start, today.AddDate(0, 0, 1)
	case TimeframeThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return start, today.AddDate(0, 0, 1)
	case TimeframeLastMonth:
		end := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return end.AddDate(0, -1, 0), end
	}

	return today, today.AddDate(0, 0, 1)
}

// DateRange is a resolved timeframe. End is exclusive; Start and End are zero
// when All is set.
type DateRange struct {
	Start time.Time
	End   time.Time
	All   bool
}

// Filter converts the range into a sale filter.
func (r DateRange) Filter() sale.ListFilter {
	if r.All {
		return sale.ListFilter{}
	}

	return sale.ListFilter{From: &r.Start, To: &r.End}
}

var errDateFormat = errors.New("use YYYY-MM-DD")

// timeframeFields holds the answers of the timeframe questions. It is shared by
// pointer with the huh fields bound to it.
type timeframeFields struct {
	loc    *time.Location
	first  Timeframe
	choice Timeframe
	start  string
	end    string
}

func newTimeframeFields(first Timeframe, loc *time.Location) *timeframeFields {
	if loc == nil {
		loc = time.Local
	}

	return &timeframeFields{loc: loc, first: first, choice: first}
}

// groups returns the preset picker followed by the custom range inputs, which
// stay hidden unless Custom Range is chosen.
func (f *timeframeFields) groups() []*huh.Group {
	opts := make([]huh.Option[Timeframe], 0, int(TimeframeCustom-f.first)+1)
	for tf := f.first; tf <= TimeframeCustom; tf++ {
		opts = append(opts, huh.NewOption(tf.String(), tf))
	}

	return []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Title("Timeframe").
				Options(opts...).
				Value(&f.choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder(time.DateOnly).
				Value(&f.start).
				Validate(f.validateStart),
			huh.NewInput().
				Title("End date").
				Description("Inclusive").
				Placeholder(time.DateOnly).
				Value(&f.end).
				Validate(f.validateEnd),
		).WithHideFunc(func() bool { return f.choice != TimeframeCustom }),
	}
}

func (f *timeframeFields) parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, f.loc)
	if err != nil {
		return time.Time{}, errDateFormat
	}

	return t, nil
}

func (f *timeframeFields) validateStart(s string) error {
	_, err := f.parse(s)
	return err
}

func (f *timeframeFields) validateEnd(s string) error {
	end, err := f.parse(s)
	if err != nil {
		return err
	}

	if start, err := f.parse(f.start); err == nil && end.Before(start) {
		return errors.New("end date is before start date")
	}

	return nil
}

// resolve turns the answers into a range relative to now.
func (f *timeframeFields) resolve(now time.Time) (DateRange, error) {
	switch f.choice {
	case TimeframeAll:
		return DateRange{All: true}, nil
	case TimeframeCustom:
		start, err := f.parse(f.start)
		if err != nil {
			return DateRange{}, err
		}

		if err := f.validateEnd(f.end); err != nil {
			return DateRange{}, err
		}

		end, _ := f.parse(f.end)

		return DateRange{Start: start, End: end.AddDate(0, 0, 1)}, nil
	}

	start, end := timeframeRange(f.choice, now, f.loc)

	return DateRange{Start: start, End: end}, nil
}
