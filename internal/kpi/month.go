package kpi

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a calendar month label. Its integer value is the canonical
// ordering used for every series the engine returns.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthLabels = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var longMonthNames = map[string]Month{
	"january": January, "february": February, "march": March, "april": April,
	"may": May, "june": June, "july": July, "august": August,
	"september": September, "october": October, "november": November, "december": December,
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthLabels[m]
}

// Previous returns the month before m and false for January.
func (m Month) Previous() (Month, bool) {
	if m <= January || !m.Valid() {
		return 0, false
	}
	return m - 1, true
}

// ParseMonth accepts "Jan", "January" (any case) or "1".."12".
func ParseMonth(label string) (Month, error) {
	s := strings.TrimSpace(label)
	if n, err := strconv.Atoi(s); err == nil {
		if m := Month(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, label)
	}

	lower := strings.ToLower(s)
	if m, ok := longMonthNames[lower]; ok {
		return m, nil
	}
	for i := 1; i < len(monthLabels); i++ {
		if strings.ToLower(monthLabels[i]) == lower {
			return Month(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, label)
}

func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
