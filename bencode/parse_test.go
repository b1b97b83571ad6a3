package bencode

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cow := NewDict()
	cow.Set("cow", String("moo"))
	cow.Set("spam", String("eggs"))

	spam := NewDict()
	spam.Set("spam", List{String("a"), String("b")})

	var tests = []struct {
		input    string
		expected Value
	}{
		{
			input:    "4:spam",
			expected: String("spam"),
		},
		{
			input:    "0:",
			expected: String(""),
		},
		{
			input:    "i3e",
			expected: Integer(3),
		},
		{
			input:    "i0e",
			expected: Integer(0),
		},
		{
			input:    "i-17e",
			expected: Integer(-17),
		},
		{
			input:    "i2147483647e",
			expected: Integer(2147483647),
		},
		{
			input:    "i-2147483648e",
			expected: Integer(-2147483648),
		},
		{
			input:    "l4:spam4:eggse",
			expected: List{String("spam"), String("eggs")},
		},
		{
			input:    "le",
			expected: List{},
		},
		{
			input:    "d3:cow3:moo4:spam4:eggse",
			expected: cow,
		},
		{
			input:    "d4:spaml1:a1:bee",
			expected: spam,
		},
		{
			input:    "de",
			expected: NewDict(),
		},
		{
			// a single trailing newline is fine
			input:    "4:spam\n",
			expected: String("spam"),
		},
	}

	for _, test := range tests {
		actual, err := Parse([]byte(test.input))
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", test.input, err)
		}

		if !reflect.DeepEqual(actual, test.expected) {
			t.Fatalf("Parse(%q) returned %v, expected %v", test.input, actual, test.expected)
		}
	}
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		input    string
		expected error
	}{
		{
			input:    "5:spam",
			expected: ErrTruncatedString,
		},
		{
			input:    "4spam",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "04:spam",
			expected: ErrInvalidInteger,
		},
		{
			input:    "i03e",
			expected: ErrInvalidInteger,
		},
		{
			input:    "i-0e",
			expected: ErrInvalidInteger,
		},
		{
			input:    "ie",
			expected: ErrInvalidInteger,
		},
		{
			input:    "i-e",
			expected: ErrInvalidInteger,
		},
		{
			input:    "i12",
			expected: ErrInvalidInteger,
		},
		{
			input:    "i2147483648e",
			expected: ErrIntegerOverflow,
		},
		{
			input:    "i-2147483649e",
			expected: ErrIntegerOverflow,
		},
		{
			input:    "4:spamextra",
			expected: ErrTrailingData,
		},
		{
			input:    "i0e\n\n",
			expected: ErrTrailingData,
		},
		{
			input:    "x",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "l4:spam",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "d3:cow3:moo",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "di0ei1ee",
			expected: ErrUnexpectedToken,
		},
		{
			input:    "d4:spam4:eggs3:cow3:mooe",
			expected: ErrUnsortedDictKey,
		},
		{
			input:    "d3:cow3:moo3:cow3:baae",
			expected: ErrUnsortedDictKey,
		},
	}

	for _, test := range tests {
		_, err := Parse([]byte(test.input))
		if !errors.Is(err, test.expected) {
			t.Fatalf("Parse(%q) returned %v, expected %v", test.input, err, test.expected)
		}
	}
}

func TestParseLenient(t *testing.T) {
	expected := NewDict()
	expected.Set("cow", String("moo"))
	expected.Set("spam", String("eggs"))

	actual, err := ParseLenient([]byte("d4:spam4:eggs3:cow3:mooe"))
	if err != nil {
		t.Fatalf("ParseLenient() returned error: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("ParseLenient() returned %v, expected %v", actual, expected)
	}

	// later duplicates win
	dedup := NewDict()
	dedup.Set("cow", String("baa"))

	actual, err = ParseLenient([]byte("d3:cow3:moo3:cow3:baae"))
	if err != nil {
		t.Fatalf("ParseLenient() returned error: %v", err)
	}

	if !reflect.DeepEqual(actual, dedup) {
		t.Fatalf("ParseLenient() returned %v, expected %v", actual, dedup)
	}
}

func TestParseRecursionLimit(t *testing.T) {
	input := strings.Repeat("l", maxDepth+1)

	_, err := Parse([]byte(input))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("Parse() returned %v, expected %v", err, ErrRecursionLimit)
	}

	// a document at the limit works
	nested := strings.Repeat("l", maxDepth) + strings.Repeat("e", maxDepth)
	if _, err := Parse([]byte(nested)); err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
}

func TestParseInputTooLarge(t *testing.T) {
	input := bytes.Repeat([]byte("x"), maxInputSize+1)

	_, err := Parse(input)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("Parse() returned %v, expected %v", err, ErrInputTooLarge)
	}
}
