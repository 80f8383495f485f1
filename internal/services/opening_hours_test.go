package services

import (
	"testing"
	"time"
)

func TestParseOpeningHours(t *testing.T) {
	weekly := []string{
		"Monday: 9:00 AM – 5:30 PM",
		"Tuesday: 9:00\u202fAM\u2009–\u20095:00\u202fPM",
		"Wednesday: 9:00 – 11:30 AM",
		"Thursday: 9 AM - 5 PM",
		"Friday: Closed",
		"Saturday: 12:00 PM — 10:00 PM",
	}

	tests := []struct {
		name    string
		weekday time.Weekday
		want    OpeningHours
	}{
		{"both markers", time.Monday, OpeningHours{Opens: 9, Closes: 17.5}},
		{"narrow spaces", time.Tuesday, OpeningHours{Opens: 9, Closes: 17}},
		{"single marker", time.Wednesday, OpeningHours{Opens: 9, Closes: 11.5}},
		{"whole hours", time.Thursday, OpeningHours{Opens: 9, Closes: 17}},
		{"closed", time.Friday, OpeningHours{IsClosed: true}},
		{"noon", time.Saturday, OpeningHours{Opens: 12, Closes: 22}},
		{"missing weekday", time.Sunday, OpeningHours{Opens: 9, Closes: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOpeningHours(weekly, tt.weekday)
			if got != tt.want {
				t.Fatalf("ParseOpeningHours(%s) = %+v, want %+v", tt.weekday, got, tt.want)
			}
		})
	}
}

func TestParseOpeningHoursDefaults(t *testing.T) {
	want := OpeningHours{Opens: 9, Closes: 20}

	if got := ParseOpeningHours(nil, time.Monday); got != want {
		t.Fatalf("no hours = %+v, want %+v", got, want)
	}

	got := ParseOpeningHours([]string{"Monday: Open 24 hours"}, time.Monday)
	if got != want {
		t.Fatalf("unreadable hours = %+v, want %+v", got, want)
	}
}
