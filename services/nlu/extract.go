package nlu

import (
	"regexp"
	"strings"

	"appointly/models"
)

// dateCues are scanned in order; the first cue found in the text wins.
var dateCues = []struct {
	cue   string
	value string
}{
	{"tomorrow", "tomorrow"},
	{"next week", "next_week"},
	{"monday", "monday"},
	{"tuesday", "tuesday"},
	{"wednesday", "wednesday"},
	{"thursday", "thursday"},
	{"friday", "friday"},
	{"saturday", "saturday"},
	{"sunday", "sunday"},
}

// Matches explicit clock times like "3 pm" or "3:30 pm".
var specificTimeRe = regexp.MustCompile(`\d{1,2}(:\d{2})?\s*(am|pm)`)

var timeOfDayWords = []string{"morning", "afternoon", "evening"}

var purposeWords = []string{"meeting", "consultation", "call", "interview", "demo", "appointment"}

// ExtractPreferences scans one utterance for a date cue, a time-of-day cue
// and a purpose keyword. Each category keeps the first match; a category
// with no match is left empty so it does not clobber an earlier turn's
// value on merge.
func ExtractPreferences(text string) models.Preferences {
	lower := strings.ToLower(text)
	var prefs models.Preferences

	for _, d := range dateCues {
		if strings.Contains(lower, d.cue) {
			prefs.DatePreference = d.value
			break
		}
	}

	if m := specificTimeRe.FindString(lower); m != "" {
		prefs.TimePreference = m
	} else {
		for _, w := range timeOfDayWords {
			if strings.Contains(lower, w) {
				prefs.TimePreference = w
				break
			}
		}
	}

	for _, w := range purposeWords {
		if strings.Contains(lower, w) {
			prefs.Purpose = w
			break
		}
	}

	return prefs
}
