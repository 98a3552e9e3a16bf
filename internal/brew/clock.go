package brew

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a number of seconds that reads and prints as M:SS.
type Clock int

// ParseClock parses an M:SS string into a Clock.
func ParseClock(text string) (Clock, error) {
	secs, err := ParseTime(text)
	if err != nil {
		return 0, err
	}
	return Clock(secs), nil
}

// Seconds returns the clock value as plain seconds.
func (c Clock) Seconds() int {
	return int(c)
}

func (c Clock) String() string {
	return FormatTime(int(c))
}

// ParseTime converts "M:SS" into seconds. A seconds part of 60 or more carries
// into minutes, so "1:75" is 135.
func ParseTime(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q: want M:SS", ErrFormat, text)
	}
	minutes, err := parseTimePart(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: minutes: %v", ErrFormat, text, err)
	}
	seconds, err := parseTimePart(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: seconds: %v", ErrFormat, text, err)
	}
	return minutes*60 + seconds, nil
}

func parseTimePart(part string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// FormatTime renders seconds as M:SS. Negative values render as 0:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// MarshalText renders the clock as M:SS.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses M:SS.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
