package dto

import (
	"fmt"
	"net/url"
	"time"

	"github.com/keystone-apparel/keystone/internal/sale"
)

// DayRange reads ?date=YYYY-MM-DD or ?from=&to= (both inclusive calendar
// days in loc) into a half-open sale filter. No parameters selects everything.
func DayRange(q url.Values, loc *time.Location) (sale.ListFilter, error) {
	if s := q.Get("date"); s != "" {
		day, err := time.ParseInLocation(time.DateOnly, s, loc)
		if err != nil {
			return sale.ListFilter{}, fmt.Errorf("invalid date %q", s)
		}

		return sale.DayFilter(day, loc), nil
	}

	var filter sale.ListFilter

	if s := q.Get("from"); s != "" {
		from, err := time.ParseInLocation(time.DateOnly, s, loc)
		if err != nil {
			return sale.ListFilter{}, fmt.Errorf("invalid from %q", s)
		}

		filter.From = &from
	}

	if s := q.Get("to"); s != "" {
		to, err := time.ParseInLocation(time.DateOnly, s, loc)
		if err != nil {
			return sale.ListFilter{}, fmt.Errorf("invalid to %q", s)
		}

		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	return filter, nil
}
