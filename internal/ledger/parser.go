// Package ledger turns raw exported trip ledgers into candidate rows.
// Parsing is best-effort: it never fails a whole file, and rows it cannot
// read are handed on with a ParseError so the validator can report them.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// MinDurationHours floors the parsed duration so per-hour rates never
// divide by a near-zero value.
var MinDurationHours = decimal.RequireFromString("0.25")

var minutesPerHour = decimal.NewFromInt(60)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// Parser reads ledger text. It holds only the location dates are read in,
// so one Parser is safe for concurrent use.
type Parser struct {
	loc *time.Location
}

// NewParser returns a Parser that interprets dates in loc (UTC when nil).
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

// Parse returns one CandidateRow per non-blank data record, in file order.
// Quoted fields may span lines; Line is the physical line a record starts on.
// An empty or unrecognised file yields an empty slice, never an error.
func (p *Parser) Parse(raw string) []domain.CandidateRow {
	rows := []domain.CandidateRow{}

	lines := splitLines(decodeText(raw))
	headerIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return rows
	}

	profile, ok := DetectProfile(lines[headerIdx])
	if !ok {
		return rows
	}

	// Reader lines are 1-based from the line after the header.
	offset := headerIdx + 1
	r := newRecordReader(strings.Join(lines[headerIdx+1:], "\n"), profile.Delimiter)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				break
			}
			rows = append(rows, domain.CandidateRow{
				Line:       perr.StartLine + offset,
				ParseError: fmt.Sprintf("malformed line: %v", perr.Err),
			})
			continue
		}
		if blankRecord(record) {
			continue
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, p.parseRow(profile, record, line+offset))
	}
	return rows
}

func (p *Parser) parseRow(profile Profile, record []string, lineNo int) domain.CandidateRow {
	row := domain.CandidateRow{Line: lineNo}

	if len(record) < profile.MinFields {
		row.ParseError = fmt.Sprintf("expected at least %d fields, got %d", profile.MinFields, len(record))
		return row
	}

	dateStr := profile.field(record, profile.Date)
	occurredAt, ok := p.parseDateTime(dateStr, profile.field(record, profile.Time))
	if !ok {
		row.ParseError = fmt.Sprintf("unreadable date %q", dateStr)
		return row
	}

	row.OccurredAt = occurredAt
	row.City = norm.NFC.String(profile.field(record, profile.City))
	row.Platform = norm.NFC.String(profile.field(record, profile.Category))
	row.Amount = parseNumber(profile.field(record, profile.Amount))
	row.DistanceKm = parseNumber(profile.field(record, profile.Distance))
	row.DurationHours = minutesToHours(parseNumber(profile.field(record, profile.Duration)))
	return row
}

// parseDateTime combines the date and time columns. A missing or unreadable
// time means midnight; an unreadable date fails the row.
func (p *Parser) parseDateTime(dateStr, timeStr string) (time.Time, bool) {
	date, ok := parseInLayouts(dateStr, dateLayouts, p.loc)
	if !ok {
		return time.Time{}, false
	}
	clock, ok := parseInLayouts(strings.ToUpper(timeStr), timeLayouts, p.loc)
	if !ok {
		return date, true
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, p.loc), true
}

func parseInLayouts(s string, layouts []string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber reads amounts such as "85.50", "R$ 85,50", "1.234,56" and
// "1,234.56". Anything unreadable is zero, which validation then rejects.
func parseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func minutesToHours(minutes decimal.Decimal) decimal.Decimal {
	hours := minutes.Div(minutesPerHour).Round(4)
	if hours.LessThan(MinDurationHours) {
		return MinDurationHours
	}
	return hours
}

func newRecordReader(body string, delim rune) *csv.Reader {
	r := csv.NewReader(strings.NewReader(body))
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r
}

// blankRecord reports whitespace-only lines, which the reader returns as
// a single empty field.
func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// decodeText strips a UTF-8 BOM and falls back to Windows-1252, the usual
// encoding of spreadsheet exports, when the input is not valid UTF-8.
func decodeText(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if utf8.ValidString(raw) {
		return raw
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(raw)
	if err != nil {
		return raw
	}
	return decoded
}
