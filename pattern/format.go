package pattern

import (
	"strings"
	"time"
)

// Format renders t with the compiled pattern.
func (p *Pattern) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range p.tokens {
		if tok.isLiteral() {
			b.WriteString(tok.text)
			continue
		}
		b.WriteString(formatField(t, tok))
	}
	return b.String()
}

// Format renders t with pattern, compiling it through the cache.
func Format(t time.Time, pattern string) (string, error) {
	p, err := cached(pattern)
	if err != nil {
		return "", err
	}
	return p.Format(t), nil
}

func formatField(t time.Time, tok token) string {
	switch tok.letter {
	case 'G':
		if t.Year() > 0 {
			return "AD"
		}
		return "BC"

	case 'y':
		year := yearOfEra(t.Year())
		if tok.count == 2 {
			return Pad(year%100, 2)
		}
		return Pad(year, tok.count)

	case 'M', 'L':
		switch {
		case tok.count >= 4:
			return t.Month().String()
		case tok.count == 3:
			return t.Month().String()[:3]
		}
		return Pad(int(t.Month()), tok.count)

	case 'd':
		return Pad(t.Day(), tok.count)

	case 'D':
		return Pad(t.YearDay(), tok.count)

	case 'E':
		if tok.count >= 4 {
			return t.Weekday().String()
		}
		return t.Weekday().String()[:3]

	case 'u':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return Pad(wd, tok.count)

	case 'a':
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"

	case 'H':
		return Pad(t.Hour(), tok.count)

	case 'k':
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		return Pad(h, tok.count)

	case 'K':
		return Pad(t.Hour()%12, tok.count)

	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return Pad(h, tok.count)

	case 'm':
		return Pad(t.Minute(), tok.count)

	case 's':
		return Pad(t.Second(), tok.count)

	case 'S':
		return Pad(t.Nanosecond()/int(time.Millisecond), tok.count)

	case 'Z':
		_, offset := t.Zone()
		return formatOffset(offset, true, false)

	case 'X':
		_, offset := t.Zone()
		if offset == 0 {
			return "Z"
		}
		switch tok.count {
		case 1:
			return formatOffset(offset, false, false)
		case 2:
			return formatOffset(offset, true, false)
		}
		return formatOffset(offset, true, true)

	case 'z':
		name, _ := t.Zone()
		return name
	}
	return ""
}

// yearOfEra maps astronomical years (0 = 1 BC) onto era years.
func yearOfEra(year int) int {
	if year <= 0 {
		return 1 - year
	}
	return year
}

func formatOffset(seconds int, withMinutes, colon bool) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	s := sign + Pad(seconds/3600, 2)
	if !withMinutes {
		return s
	}
	if colon {
		s += ":"
	}
	return s + Pad(seconds%3600/60, 2)
}
