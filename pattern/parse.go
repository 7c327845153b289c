package pattern

import (
	"strconv"
	"strings"
	"time"
)

// maxDigits bounds greedy numeric reads.
const maxDigits = 10

// fields collects what the text supplied. Anything missing falls back to
// 1970-01-01 00:00:00.000.
type fields struct {
	year, month, day, yearDay         int
	hour, hour12, minute, second, milli int

	hasMonth, hasDay, hasYearDay bool
	hasHour, hasHour12           bool
	pm, hasAmPm                  bool
	bc                           bool

	offset    int
	hasOffset bool
}

// Parse reads text with the compiled pattern. Field values are lenient
// (month 13 rolls into the next year); the whole text must be consumed.
// Without a zone in the text the result is interpreted in loc (nil = UTC).
func (p *Pattern) Parse(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := fields{year: 1970, month: 1, day: 1}
	pos := 0

	for i, tok := range p.tokens {
		if tok.isLiteral() {
			if !strings.HasPrefix(text[pos:], tok.text) {
				return time.Time{}, &MismatchError{Text: text, Pos: pos, Msg: "expected " + strconv.Quote(tok.text)}
			}
			pos += len(tok.text)
			continue
		}

		var n int
		var err error
		if tok.numeric() {
			width := 0
			if i+1 < len(p.tokens) && p.tokens[i+1].numeric() {
				width = tok.count
			}
			n, pos, err = readNumber(text, pos, width, tok.letter == 'y')
			if err != nil {
				return time.Time{}, err
			}
		}

		switch tok.letter {
		case 'y':
			f.year = n
			if tok.count <= 2 && digitsOnly(text, pos, 2) {
				f.year = resolveTwoDigitYear(n, time.Now())
			}
		case 'M', 'L':
			if tok.numeric() {
				f.month = n
			} else {
				f.month, pos, err = readName(text, pos, monthNames[:])
				if err != nil {
					return time.Time{}, err
				}
				f.month++
			}
			f.hasMonth = true
		case 'd':
			f.day, f.hasDay = n, true
		case 'D':
			f.yearDay, f.hasYearDay = n, true
		case 'E':
			if _, pos, err = readName(text, pos, weekdayNames[:]); err != nil {
				return time.Time{}, err
			}
		case 'u':
			// day-of-week numbers carry no information once the date is known
		case 'a':
			var idx int
			if idx, pos, err = readName(text, pos, []string{"AM", "PM"}); err != nil {
				return time.Time{}, err
			}
			f.pm, f.hasAmPm = idx == 1, true
		case 'G':
			var idx int
			if idx, pos, err = readName(text, pos, []string{"BC", "AD"}); err != nil {
				return time.Time{}, err
			}
			f.bc = idx == 0
		case 'H':
			f.hour, f.hasHour = n, true
		case 'k':
			if n == 24 {
				n = 0
			}
			f.hour, f.hasHour = n, true
		case 'K':
			f.hour12, f.hasHour12 = n, true
		case 'h':
			if n == 12 {
				n = 0
			}
			f.hour12, f.hasHour12 = n, true
		case 'm':
			f.minute = n
		case 's':
			f.second = n
		case 'S':
			f.milli = n
		case 'Z', 'X', 'z':
			if f.offset, pos, err = readOffset(text, pos); err != nil {
				return time.Time{}, err
			}
			f.hasOffset = true
		}
	}

	if pos != len(text) {
		return time.Time{}, &MismatchError{Text: text, Pos: pos, Msg: "unparsed trailing text"}
	}
	return f.time(loc), nil
}

// Parse reads text with pattern, compiling it through the cache.
func Parse(text, pattern string, loc *time.Location) (time.Time, error) {
	p, err := cached(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return p.Parse(text, loc)
}

func (f fields) time(loc *time.Location) time.Time {
	year := f.year
	if f.bc {
		year = 1 - year
	}

	hour := f.hour
	if !f.hasHour {
		hour = f.hour12
		if f.pm {
			hour += 12
		}
	}

	zone := loc
	if f.hasOffset {
		zone = time.FixedZone("", f.offset)
	}

	var t time.Time
	if f.hasYearDay && !f.hasMonth && !f.hasDay {
		t = time.Date(year, time.January, f.yearDay, hour, f.minute, f.second, f.milli*int(time.Millisecond), zone)
	} else {
		t = time.Date(year, time.Month(f.month), f.day, hour, f.minute, f.second, f.milli*int(time.Millisecond), zone)
	}
	return t.In(loc)
}

// resolveTwoDigitYear places a two digit year within the century starting
// 80 years before now.
func resolveTwoDigitYear(n int, now time.Time) int {
	start := now.Year() - 80
	year := start/100*100 + n
	if year < start {
		year += 100
	}
	return year
}

// readNumber reads digits at pos. width > 0 reads exactly that many digits;
// width == 0 reads greedily. A sign is accepted only when signed is set.
func readNumber(text string, pos, width int, signed bool) (int, int, error) {
	start := pos
	neg := false
	if signed && pos < len(text) && (text[pos] == '-' || text[pos] == '+') {
		neg = text[pos] == '-'
		pos++
	}

	limit := maxDigits
	if width > 0 {
		limit = width
	}
	digitsStart := pos
	for pos < len(text) && pos-digitsStart < limit && isDigit(text[pos]) {
		pos++
	}
	if pos == digitsStart {
		return 0, start, &MismatchError{Text: text, Pos: start, Msg: "expected digits"}
	}

	n, err := strconv.Atoi(text[digitsStart:pos])
	if err != nil {
		return 0, start, &MismatchError{Text: text, Pos: start, Msg: err.Error()}
	}
	if neg {
		n = -n
	}
	return n, pos, nil
}

// digitsOnly reports whether exactly n unsigned digits end at pos.
func digitsOnly(text string, end, n int) bool {
	start := end - n
	if start < 0 {
		return false
	}
	if start > 0 && (isDigit(text[start-1]) || text[start-1] == '-' || text[start-1] == '+') {
		return false
	}
	for i := start; i < end; i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var weekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// readName matches a full name, or its three letter abbreviation, case
// insensitively. It returns the index of the matched name.
func readName(text string, pos int, names []string) (int, int, error) {
	rest := text[pos:]
	for i, name := range names {
		if len(rest) >= len(name) && strings.EqualFold(rest[:len(name)], name) {
			return i, pos + len(name), nil
		}
	}
	for i, name := range names {
		if len(name) > 3 && len(rest) >= 3 && strings.EqualFold(rest[:3], name[:3]) {
			return i, pos + 3, nil
		}
	}
	return 0, pos, &MismatchError{Text: text, Pos: pos, Msg: "unknown name"}
}

// readOffset accepts Z, UTC, GMT, +hh, +hhmm and +hh:mm.
func readOffset(text string, pos int) (int, int, error) {
	rest := text[pos:]
	switch {
	case strings.HasPrefix(rest, "Z"):
		return 0, pos + 1, nil
	case strings.HasPrefix(rest, "UTC"), strings.HasPrefix(rest, "GMT"):
		pos += 3
		if pos == len(text) || (text[pos] != '+' && text[pos] != '-') {
			return 0, pos, nil
		}
		rest = text[pos:]
	}

	if len(rest) < 3 || (rest[0] != '+' && rest[0] != '-') || !isDigit(rest[1]) || !isDigit(rest[2]) {
		return 0, pos, &MismatchError{Text: text, Pos: pos, Msg: "expected zone offset"}
	}
	sign := 1
	if rest[0] == '-' {
		sign = -1
	}
	hours := int(rest[1]-'0')*10 + int(rest[2]-'0')
	n := 3

	minutes := 0
	if len(rest) > n && rest[n] == ':' {
		n++
	}
	if len(rest) >= n+2 && isDigit(rest[n]) && isDigit(rest[n+1]) {
		minutes = int(rest[n]-'0')*10 + int(rest[n+1]-'0')
		n += 2
	} else if n > 3 {
		return 0, pos, &MismatchError{Text: text, Pos: pos + n, Msg: "expected zone minutes"}
	}

	return sign * (hours*3600 + minutes*60), pos + n, nil
}
