package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OpeningHours is one weekday's open window in decimal hours.
type OpeningHours struct {
	Opens    float64
	Closes   float64
	IsClosed bool
}

// HoursFunc resolves an activity's weekly hours text for one weekday.
type HoursFunc func(weekly []string, weekday time.Weekday) OpeningHours

// Generic day assumed when hours are unknown or unreadable.
var defaultHours = OpeningHours{Opens: 9, Closes: 20}

var (
	// "9:00 AM – 5:30 PM"
	hoursBothMarkers = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)\s*[–—-]\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)
	// "9:00 – 11:30 AM"; the single marker applies to both times.
	hoursOneMarker = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*[–—-]\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)
	// "9 AM – 5 PM"
	hoursWholeHours = regexp.MustCompile(`(?i)(\d{1,2})\s*(AM|PM)\s*[–—-]\s*(\d{1,2})\s*(AM|PM)`)
)

// Places APIs pad times with narrow and non-breaking spaces that \s does not match.
var spaceNormalizer = strings.NewReplacer("\u202f", " ", "\u2009", " ", "\u00a0", " ")

// ParseOpeningHours reads lines such as "Monday: 9:00 AM – 5:00 PM" and returns
// the window for weekday. Unknown or unparseable hours fall back to 9:00-20:00.
func ParseOpeningHours(weekly []string, weekday time.Weekday) OpeningHours {
	if len(weekly) == 0 {
		return defaultHours
	}

	name := weekday.String()
	line := ""
	found := false
	for _, l := range weekly {
		if strings.HasPrefix(strings.TrimSpace(l), name) {
			line = spaceNormalizer.Replace(l)
			found = true
			break
		}
	}
	if !found {
		return defaultHours
	}

	if strings.Contains(strings.ToLower(line), "closed") {
		return OpeningHours{IsClosed: true}
	}

	if m := hoursBothMarkers.FindStringSubmatch(line); m != nil {
		return window(clockMatch{m[1], m[2], m[3]}, clockMatch{m[4], m[5], m[6]})
	}
	if m := hoursOneMarker.FindStringSubmatch(line); m != nil {
		return window(clockMatch{m[1], m[2], m[5]}, clockMatch{m[3], m[4], m[5]})
	}
	if m := hoursWholeHours.FindStringSubmatch(line); m != nil {
		return window(clockMatch{m[1], "00", m[2]}, clockMatch{m[3], "00", m[4]})
	}

	return defaultHours
}

func window(opens, closes clockMatch) OpeningHours {
	return OpeningHours{Opens: opens.decimal(), Closes: closes.decimal()}
}

type clockMatch struct {
	hour, minute, ampm string
}

// decimal converts a 12-hour reading to 24-hour decimal hours.
func (c clockMatch) decimal() float64 {
	h, _ := strconv.Atoi(c.hour)
	m, _ := strconv.Atoi(c.minute)

	switch strings.ToUpper(c.ampm) {
	case "PM":
		if h != 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	}

	return float64(h) + float64(m)/60
}
