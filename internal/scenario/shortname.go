package scenario

import "github.com/apetersson/cfbsim/internal/season"

var shortNames = map[season.TeamName]string{
	"Arizona":        "AZ",
	"Arizona St":     "ASU",
	"BYU":            "BYU",
	"Baylor":         "BAY",
	"Colorado":       "CO",
	"UCF":            "UCF",
	"Cincinnati":     "Cinci",
	"Houston":        "UH",
	"Iowa St":        "ISU",
	"Kansas St":      "KSU",
	"Kansas":         "KS",
	"Oklahoma State": "OKST",
	"TCU":            "TCU",
	"Texas Tech":     "TTech",
	"Utah":           "Utah",
	"West Virginia":  "WVU",
}

// ShortName abbreviates a team name for compact scenario descriptions,
// falling back to the full name for teams outside the known table.
func ShortName(team season.TeamName) string {
	if short, ok := shortNames[team]; ok {
		return short
	}
	return team
}
