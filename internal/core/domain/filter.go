package domain

// FilterState is the date range and page used to build the next stats
// request. Zero dates mean "no range".
type FilterState struct {
	Start Date
	End   Date
	Page  int
}

// TodayFilter is the dashboard's initial state.
func TodayFilter(today Date) FilterState {
	return FilterState{Start: today, End: today, Page: 1}
}

func (f FilterState) Query() StatsQuery {
	return StatsQuery{Page: f.Page, Start: f.Start, End: f.End}
}

// DateInputs mirrors the operator-editable date fields. They are only copied
// into FilterState by a successful apply or a quick filter.
type DateInputs struct {
	Start    string
	End      string
	Compare1 string
	Compare2 string
}

// ValidateRange checks the raw start/end inputs of a filter apply.
func ValidateRange(start, end string) (Date, Date, error) {
	if start == "" || end == "" {
		return Date{}, Date{}, ErrBothDatesRequired
	}
	s, err := ParseDate(start)
	if err != nil {
		return Date{}, Date{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Date{}, Date{}, err
	}
	if s.After(e) {
		return Date{}, Date{}, ErrStartAfterEnd
	}
	return s, e, nil
}

// ValidateComparison checks the two comparison day inputs.
func ValidateComparison(day1, day2 string) (Date, Date, error) {
	if day1 == "" || day2 == "" {
		return Date{}, Date{}, ErrBothDaysRequired
	}
	if day1 == day2 {
		return Date{}, Date{}, ErrSameDay
	}
	d1, err := ParseDate(day1)
	if err != nil {
		return Date{}, Date{}, err
	}
	d2, err := ParseDate(day2)
	if err != nil {
		return Date{}, Date{}, err
	}
	return d1, d2, nil
}
