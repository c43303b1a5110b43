package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Timecode is a non-negative offset into a media artifact with millisecond precision
type Timecode time.Duration

// timecodePattern accepts H+:MM:SS,mmm with one or two digit minutes/seconds
// and one to three digit milliseconds, the way subtitle engines emit them
var timecodePattern = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2}),(\d{1,3})$`)

// maxHours keeps the full HH:MM:SS,mmm sum inside time.Duration
const maxHours = int64(math.MaxInt64/time.Hour) - 1

// ParseTimecode parses the subtitle timecode form HH:MM:SS,mmm
func ParseTimecode(text string) (Timecode, error) {
	matches := timecodePattern.FindStringSubmatch(text)
	if len(matches) != 5 {
		return 0, &TimecodeError{Input: text, Reason: "expected HH:MM:SS,mmm"}
	}

	hours, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || hours > maxHours {
		return 0, &TimecodeError{Input: text, Reason: "hours out of range"}
	}
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])
	millis, _ := strconv.Atoi(matches[4])

	switch {
	case minutes >= 60:
		return 0, &TimecodeError{Input: text, Reason: "minutes must be below 60"}
	case seconds >= 60:
		return 0, &TimecodeError{Input: text, Reason: "seconds must be below 60"}
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return Timecode(d), nil
}

// TimecodeFromSeconds converts a playback clock reading to a Timecode.
// Negative readings clamp to zero and precision rounds to the millisecond.
func TimecodeFromSeconds(seconds float64) Timecode {
	if seconds <= 0 {
		return 0
	}
	return Timecode(time.Duration(math.Round(seconds*1000)) * time.Millisecond)
}

// Seconds returns the timecode as fractional seconds
func (t Timecode) Seconds() float64 {
	return time.Duration(t).Seconds()
}

// Format renders the timecode as M:SS for transcript rows.
// Hours fold into minutes and sub-second precision is dropped.
func (t Timecode) Format() string {
	total := int64(time.Duration(t) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// SRT renders the timecode in subtitle form (HH:MM:SS,mmm)
func (t Timecode) SRT() string {
	ms := int64(time.Duration(t) / time.Millisecond)
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// String implements fmt.Stringer
func (t Timecode) String() string {
	return t.SRT()
}
