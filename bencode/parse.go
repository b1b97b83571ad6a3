package bencode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Declared string lengths and nesting depth are attacker controlled, so
	// both the total input size and the recursion depth are bounded.
	maxInputSize = 1 << 20
	maxDepth     = 64
)

var (
	ErrTruncatedString = errors.New("bencode: truncated string")
	ErrInvalidInteger  = errors.New("bencode: invalid integer")
	ErrIntegerOverflow = errors.New("bencode: integer overflow")
	ErrUnsortedDictKey = errors.New("bencode: unsorted dictionary key")
	ErrTrailingData    = errors.New("bencode: trailing data")
	ErrUnexpectedToken = errors.New("bencode: unexpected token")
	ErrRecursionLimit  = errors.New("bencode: recursion limit exceeded")
	ErrInputTooLarge   = errors.New("bencode: input too large")
)

// Parse decodes exactly one canonical bencoded value from data. A single
// trailing newline is tolerated, anything else after the value is an error.
// Dictionaries must arrive with strictly ascending keys.
func Parse(data []byte) (Value, error) {
	return parse(data, false)
}

// ParseLenient is like Parse but accepts dictionaries with unsorted or
// duplicate keys, sorting them on construction. Duplicate keys resolve to
// the last value seen. Only use this for input from third parties.
func ParseLenient(data []byte) (Value, error) {
	return parse(data, true)
}

func parse(data []byte, lenient bool) (Value, error) {
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}

	p := &parser{data: data, lenient: lenient}

	value, err := p.value()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.pos++
	}

	if p.pos != len(p.data) {
		return nil, fmt.Errorf("%w: %d bytes left at offset %d", ErrTrailingData, len(p.data)-p.pos, p.pos)
	}

	return value, nil
}

type parser struct {
	data    []byte
	pos     int
	depth   int
	lenient bool
}

func (p *parser) value() (Value, error) {
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("%w: unexpected end of input at offset %d", ErrUnexpectedToken, p.pos)
	}

	switch c := p.data[p.pos]; {
	case isDigit(c):
		s, err := p.string()
		if err != nil {
			return nil, err
		}
		return s, nil
	case c == 'i':
		return p.integer()
	case c == 'l':
		return p.list()
	case c == 'd':
		return p.dict()
	default:
		return nil, fmt.Errorf("%w: byte %q at offset %d", ErrUnexpectedToken, c, p.pos)
	}
}

// parses <length>:<bytes>
func (p *parser) string() (String, error) {
	start := p.pos
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}

	digits := p.data[start:p.pos]
	if len(digits) > 1 && digits[0] == '0' {
		return "", fmt.Errorf("%w: leading zero in string length at offset %d", ErrInvalidInteger, start)
	}

	if p.pos >= len(p.data) || p.data[p.pos] != ':' {
		return "", fmt.Errorf("%w: missing ':' after string length at offset %d", ErrUnexpectedToken, p.pos)
	}
	p.pos++

	length, err := strconv.ParseUint(string(digits), 10, 32)
	if err != nil || int(length) > len(p.data)-p.pos {
		return "", fmt.Errorf("%w: declared %s bytes, %d left at offset %d", ErrTruncatedString, digits, len(p.data)-p.pos, p.pos)
	}

	s := String(p.data[p.pos : p.pos+int(length)])
	p.pos += int(length)
	return s, nil
}

// parses i<digits>e, rejecting leading zeros and negative zero
func (p *parser) integer() (Value, error) {
	open := p.pos
	p.pos++

	start := p.pos
	if p.pos < len(p.data) && p.data[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}

	digits := string(p.data[start:p.pos])

	if p.pos >= len(p.data) || p.data[p.pos] != 'e' {
		return nil, fmt.Errorf("%w: unterminated integer at offset %d", ErrInvalidInteger, open)
	}
	p.pos++

	if digits == "" || digits == "-" {
		return nil, fmt.Errorf("%w: no digits at offset %d", ErrInvalidInteger, open)
	}

	if digits == "-0" {
		return nil, fmt.Errorf("%w: negative zero at offset %d", ErrInvalidInteger, open)
	}

	if magnitude := strings.TrimPrefix(digits, "-"); len(magnitude) > 1 && magnitude[0] == '0' {
		return nil, fmt.Errorf("%w: leading zero at offset %d", ErrInvalidInteger, open)
	}

	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at offset %d", ErrIntegerOverflow, digits, open)
	}

	return Integer(n), nil
}

// parses l<value>*e
func (p *parser) list() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	list := List{}
	for {
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("%w: unterminated list at offset %d", ErrUnexpectedToken, p.pos)
		}

		if p.data[p.pos] == 'e' {
			p.pos++
			return list, nil
		}

		value, err := p.value()
		if err != nil {
			return nil, err
		}

		list = append(list, value)
	}
}

// parses d(<string><value>)*e
func (p *parser) dict() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.pos++

	dict := NewDict()
	var last String
	for {
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("%w: unterminated dictionary at offset %d", ErrUnexpectedToken, p.pos)
		}

		if p.data[p.pos] == 'e' {
			p.pos++
			return dict, nil
		}

		keyOffset := p.pos
		if !isDigit(p.data[p.pos]) {
			return nil, fmt.Errorf("%w: dictionary key must be a string at offset %d", ErrUnexpectedToken, p.pos)
		}

		key, err := p.string()
		if err != nil {
			return nil, err
		}

		if !p.lenient && dict.Len() > 0 && key <= last {
			return nil, fmt.Errorf("%w: %q after %q at offset %d", ErrUnsortedDictKey, key, last, keyOffset)
		}

		value, err := p.value()
		if err != nil {
			return nil, err
		}

		dict.Set(key, value)
		last = key
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return fmt.Errorf("%w at offset %d", ErrRecursionLimit, p.pos)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
