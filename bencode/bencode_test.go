package bencode

import (
	"bytes"
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	spam := NewDict()
	spam.Set("spam", List{String("a"), String("b")})

	cow := NewDict()
	cow.Set("cow", String("moo"))
	cow.Set("spam", String("eggs"))

	var tests = []struct {
		value    Value
		expected []byte
	}{
		{
			value:    String("spam"),
			expected: []byte("4:spam"),
		},
		{
			value:    String(""),
			expected: []byte("0:"),
		},
		{
			value:    Integer(3),
			expected: []byte("i3e"),
		},
		{
			value:    Integer(0),
			expected: []byte("i0e"),
		},
		{
			value:    Integer(-17),
			expected: []byte("i-17e"),
		},
		{
			value:    List{String("spam"), String("eggs")},
			expected: []byte("l4:spam4:eggse"),
		},
		{
			value:    List{},
			expected: []byte("le"),
		},
		{
			value:    NewDict(),
			expected: []byte("de"),
		},
		{
			value:    spam,
			expected: []byte("d4:spaml1:a1:bee"),
		},
		{
			value:    cow,
			expected: []byte("d3:cow3:moo4:spam4:eggse"),
		},
	}

	for _, test := range tests {
		actual := Encode(test.value)
		if !bytes.Equal(actual, test.expected) {
			t.Fatalf("Encode(%v) returned %q, expected %q", test.value, actual, test.expected)
		}
	}
}

// member order must not depend on insertion order
func TestDictKeyOrder(t *testing.T) {
	dict := NewDict()
	dict.Set("zebra", Integer(1))
	dict.Set("apple", Integer(2))
	dict.Set("mango", Integer(3))

	expectedKeys := []String{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(dict.Keys(), expectedKeys) {
		t.Fatalf("Dict.Keys() returned %v, expected %v", dict.Keys(), expectedKeys)
	}

	expected := []byte("d5:applei2e5:mangoi3e5:zebrai1ee")
	if actual := Encode(dict); !bytes.Equal(actual, expected) {
		t.Fatalf("Encode() returned %q, expected %q", actual, expected)
	}
}

func TestDictSetReplacesExistingKey(t *testing.T) {
	dict := NewDict()
	dict.Set("key", Integer(1))
	dict.Set("key", Integer(2))

	if dict.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", dict.Len())
	}

	value, ok := dict.Get("key")
	if !ok || value != Integer(2) {
		t.Fatalf("Dict.Get() returned %v, expected Integer(2)", value)
	}
}

func TestRoundTrip(t *testing.T) {
	stats := NewDict()
	stats.Set("complete", Integer(12))
	stats.Set("downloaded", Integer(34))
	stats.Set("incomplete", Integer(56))

	nested := NewDict()
	nested.Set("files", stats)
	nested.Set("peers", List{String("\x7f\x00\x00\x01\x1f\x90")})

	var tests = []Value{
		String("spam"),
		String(""),
		Integer(0),
		Integer(-2147483648),
		Integer(2147483647),
		List{Integer(1), String("two"), List{Integer(3)}},
		nested,
	}

	for _, value := range tests {
		encoded := Encode(value)
		parsed, err := Parse(encoded)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", encoded, err)
		}

		if !reflect.DeepEqual(parsed, value) {
			t.Fatalf("Parse(Encode(%v)) returned %v, expected the original value", value, parsed)
		}
	}
}
