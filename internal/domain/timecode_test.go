package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"zero", "00:00:00,000", 0, false},
		{"seconds and millis", "00:00:01,500", 1500 * time.Millisecond, false},
		{"all components", "01:02:03,004", time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, false},
		{"long hours", "123:00:00,000", 123 * time.Hour, false},
		{"short millis", "00:00:02,5", 2*time.Second + 5*time.Millisecond, false},
		{"max in range", "00:59:59,999", 59*time.Minute + 59*time.Second + 999*time.Millisecond, false},
		{"minutes 60", "00:60:00,000", 0, true},
		{"seconds 60", "00:00:60,000", 0, true},
		{"millis 1000", "00:00:00,1000", 0, true},
		{"dot separator", "00:00:01.000", 0, true},
		{"missing millis", "00:00:01", 0, true},
		{"non numeric", "00:aa:01,000", 0, true},
		{"negative", "-01:00:00,000", 0, true},
		{"empty", "", 0, true},
		{"padded", " 00:00:01,000", 0, true},
		{"largest hours", "2562046:59:59,999", 2562046*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond, false},
		{"hours overflow duration", "2562047:00:00,000", 0, true},
		{"huge hours", "3000000:00:00,000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimecode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimecode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrMalformedTimecode) {
					t.Errorf("error %v does not match ErrMalformedTimecode", err)
				}
				return
			}
			if got < 0 {
				t.Fatalf("ParseTimecode(%q) wrapped negative: %v", tt.input, time.Duration(got))
			}
			if time.Duration(got) != tt.want {
				t.Errorf("ParseTimecode(%q) = %v, want %v", tt.input, time.Duration(got), tt.want)
			}
		})
	}
}

func TestTimecode_Format(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{1.999, "0:01"},
		{59.999, "0:59"},
		{60, "1:00"},
		{125.5, "2:05"},
		{3600, "60:00"},
		{3725.9, "62:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := TimecodeFromSeconds(tt.seconds).Format(); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

// Format drops hours (folded into minutes) and sub-second precision, so the
// round trip is checked against the expected minute:second display.
func TestTimecode_FormatAfterParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"00:00:01,000", "0:01"},
		{"00:00:01,999", "0:01"},
		{"00:01:05,250", "1:05"},
		{"01:00:00,000", "60:00"},
		{"02:03:04,567", "123:04"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tc, err := ParseTimecode(tt.input)
			if err != nil {
				t.Fatalf("ParseTimecode() error = %v", err)
			}
			if got := tc.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimecode_SRTRoundTrip(t *testing.T) {
	for _, input := range []string{"00:00:00,000", "00:00:02,500", "10:59:59,999", "100:00:00,001"} {
		tc, err := ParseTimecode(input)
		if err != nil {
			t.Fatalf("ParseTimecode(%q) error = %v", input, err)
		}
		if got := tc.SRT(); got != input {
			t.Errorf("SRT() = %q, want %q", got, input)
		}
	}
}

func TestTimecodeFromSeconds(t *testing.T) {
	if got := TimecodeFromSeconds(-3); got != 0 {
		t.Errorf("TimecodeFromSeconds(-3) = %v, want 0", got)
	}
	if got := TimecodeFromSeconds(2.5); time.Duration(got) != 2500*time.Millisecond {
		t.Errorf("TimecodeFromSeconds(2.5) = %v, want 2.5s", time.Duration(got))
	}
	if got := TimecodeFromSeconds(2.5).Seconds(); got != 2.5 {
		t.Errorf("Seconds() = %v, want 2.5", got)
	}
}
