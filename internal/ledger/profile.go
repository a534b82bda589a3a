package ledger

import "strings"

// Profile maps ledger columns to trip fields by position.
type Profile struct {
	Name      string
	Delimiter rune
	Date      int
	Time      int
	City      int
	Category  int
	Amount    int
	Distance  int
	Duration  int
	// MinFields is the fewest fields a data row may have.
	MinFields int
}

// StandardCSV is the comma-delimited drivers' export:
// date, time, city, category, amount, distance, duration (minutes).
var StandardCSV = Profile{
	Name:      "standard-csv",
	Delimiter: ',',
	Date:      0,
	Time:      1,
	City:      2,
	Category:  3,
	Amount:    4,
	Distance:  5,
	Duration:  6,
	MinFields: 5,
}

// profiles is checked in order by DetectProfile.
var profiles = []Profile{StandardCSV}

// dateMarkers identify a header row. "data" covers Portuguese exports.
var dateMarkers = []string{"date", "data"}

// DetectProfile picks the column profile for a header line.
// It reports false when the header carries no date marker.
func DetectProfile(header string) (Profile, bool) {
	h := strings.ToLower(header)
	for _, m := range dateMarkers {
		if strings.Contains(h, m) {
			return profiles[0], true
		}
	}
	return Profile{}, false
}

func (p Profile) field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
