// Package i18n holds the output strings in the languages the portal supports.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Strings are the labels of the summary rows.
type Strings struct {
	Lang              string
	Welcome           string
	WorkHours         string
	TimeRemaining     string
	TimeExceeded      string
	EstimatedEnd      string
	PauseDetected     string
	PauseAdded        string
	RemainingWeekTime string
	OvertimeThisWeek  string
	None              string
	Yes               string
	No                string
	Minutes           string
	DaysLabel         string
}

var catalog = map[string]Strings{
	"fr": {
		Lang:              "fr",
		Welcome:           "Bienvenue",
		WorkHours:         "Heures travaillées",
		TimeRemaining:     "Temps restant",
		TimeExceeded:      "Temps dépassé",
		EstimatedEnd:      "Fin prévue",
		PauseDetected:     "Pause détectée",
		PauseAdded:        "Temps ajouté pour pause",
		RemainingWeekTime: "Temps restant dans la semaine",
		OvertimeThisWeek:  "Heures supplémentaires cette semaine",
		None:              "Aucun",
		Yes:               "Oui",
		No:                "Non",
		Minutes:           "minutes",
		DaysLabel:         "Vacances (j)",
	},
	"en": {
		Lang:              "en",
		Welcome:           "Welcome",
		WorkHours:         "Worked Hours",
		TimeRemaining:     "Time Remaining",
		TimeExceeded:      "Time Exceeded",
		EstimatedEnd:      "Estimated End",
		PauseDetected:     "Pause Detected",
		PauseAdded:        "Time Added for Pause",
		RemainingWeekTime: "Remaining Time in the Week",
		OvertimeThisWeek:  "Overtime This Week",
		None:              "None",
		Yes:               "Yes",
		No:                "No",
		Minutes:           "minutes",
		DaysLabel:         "Vacation (d)",
	},
	"de": {
		Lang:              "de",
		Welcome:           "Willkommen",
		WorkHours:         "Geleistete Stunden",
		TimeRemaining:     "Verbleibende Zeit",
		TimeExceeded:      "Zeit überschritten",
		EstimatedEnd:      "Geplantes Ende",
		PauseDetected:     "Pause erkannt",
		PauseAdded:        "Hinzugefügte Zeit für Pause",
		RemainingWeekTime: "Verbleibende Zeit in der Woche",
		OvertimeThisWeek:  "Überstunden diese Woche",
		None:              "Keine",
		Yes:               "Ja",
		No:                "Nein",
		Minutes:           "Minuten",
		DaysLabel:         "Urlaub (T)",
	},
}

// Supported lists the catalog languages, the default first.
var Supported = []language.Tag{language.French, language.English, language.German}

var matcher = language.NewMatcher(Supported)

// Match returns the supported language closest to tag ("fr-CH", "en_US",
// "de"). Anything unrecognised maps to French.
func Match(tag string) string {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "fr"
	}
	_, idx, conf := matcher.Match(language.Make(tag))
	if conf == language.No {
		return "fr"
	}
	base, _ := Supported[idx].Base()
	return base.String()
}

// For returns the strings of the language closest to tag.
func For(tag string) Strings {
	return catalog[Match(tag)]
}

// YesNo renders a boolean.
func (s Strings) YesNo(b bool) string {
	if b {
		return s.Yes
	}
	return s.No
}
