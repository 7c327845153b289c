/*
pattern.go - Date pattern compilation

PURPOSE:
  Compiles SimpleDateFormat-style patterns ("yyyy-MM-dd HH:mm:ss.SSS") into a
  token list that can both render a time.Time and parse text back into one.
  This is the formatting collaborator of the moment package: moment never
  looks at pattern letters itself, it only delegates here and wraps failures.

PATTERN LETTERS:
  G  era designator        AD, BC
  y  year (of era)         yyyy=2016, yy=16
  M  month in year         M=3, MM=03, MMM=Mar, MMMM=March
  L  month (standalone)    same as M
  d  day in month          d=5, dd=05
  D  day in year           D=75, DDD=075
  E  day name              EEE=Tue, EEEE=Tuesday
  u  day number of week    1=Monday .. 7=Sunday
  a  am/pm marker          AM, PM
  H  hour in day (0-23)
  k  hour in day (1-24)
  K  hour in am/pm (0-11)
  h  hour in am/pm (1-12)
  m  minute in hour
  s  second in minute
  S  millisecond           SSS=532
  Z  RFC 822 zone          -0800
  X  ISO 8601 zone         X=-08, XX=-0800, XXX=-08:00, Z for UTC
  z  zone name             CET

  Text between single quotes is literal; '' is a single quote. Any other
  unquoted ASCII letter is a syntax error.

SEE ALSO:
  - format.go: rendering
  - parse.go:  parsing
  - moment/format.go: wraps failures into moment.FormatError / moment.ParseError
*/
package pattern

import (
	"strings"
	"sync"
)

const letters = "GyMLdDEuaHkKhmsSZXz"

// token is either a literal run (letter == 0) or a field of count letters.
type token struct {
	letter byte
	count  int
	text   string
}

func (t token) isLiteral() bool { return t.letter == 0 }

// numeric reports whether the field is read and written as digits.
func (t token) numeric() bool {
	switch t.letter {
	case 'y', 'd', 'D', 'u', 'H', 'k', 'K', 'h', 'm', 's', 'S':
		return true
	case 'M', 'L':
		return t.count <= 2
	}
	return false
}

// Pattern is a compiled date pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source string
	tokens []token
}

// String returns the source pattern.
func (p *Pattern) String() string { return p.source }

// Compile parses a pattern string.
func Compile(source string) (*Pattern, error) {
	var (
		tokens []token
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '\'':
			if i+1 < len(source) && source[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			j, closed := i+1, false
			for j < len(source) {
				if source[j] == '\'' {
					if j+1 < len(source) && source[j+1] == '\'' {
						lit.WriteByte('\'')
						j += 2
						continue
					}
					closed = true
					j++
					break
				}
				lit.WriteByte(source[j])
				j++
			}
			if !closed {
				return nil, &SyntaxError{Pattern: source, Pos: i, Msg: "unterminated quote"}
			}
			i = j

		case isASCIILetter(c):
			if strings.IndexByte(letters, c) < 0 {
				return nil, &SyntaxError{Pattern: source, Pos: i, Msg: "illegal pattern character '" + string(c) + "'"}
			}
			flush()
			j := i
			for j < len(source) && source[j] == c {
				j++
			}
			tokens = append(tokens, token{letter: c, count: j - i})
			i = j

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return &Pattern{source: source, tokens: tokens}, nil
}

// MustCompile is like Compile but panics on a malformed pattern. It is meant
// for package-level pattern constants.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return p
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// =============================================================================
// COMPILED PATTERN CACHE
// =============================================================================

// maxCached bounds the cache. Patterns can come from request input, so the
// whole cache is dropped once it is full.
const maxCached = 256

var (
	cache   = make(map[string]*Pattern)
	cacheMu sync.RWMutex
)

// cached returns a compiled pattern from the cache, compiling and storing it
// on a miss. Malformed patterns are not cached.
func cached(source string) (*Pattern, error) {
	cacheMu.RLock()
	if p, ok := cache[source]; ok {
		cacheMu.RUnlock()
		return p, nil
	}
	cacheMu.RUnlock()

	p, err := Compile(source)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	if len(cache) >= maxCached {
		clear(cache)
	}
	cache[source] = p
	cacheMu.Unlock()

	return p, nil
}
