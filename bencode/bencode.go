package bencode

import (
	"bytes"
	"sort"
	"strconv"
)

// Value is a single bencoded value. The concrete types are String, Integer,
// List and *Dict.
type Value interface {
	encode(buf *bytes.Buffer)
}

type String string

type Integer int32

type List []Value

// Dict keeps its members sorted by key at all times, so encoding a Dict is
// always canonical no matter the order the members were added in.
type Dict struct {
	members []member
}

type member struct {
	key   String
	value Value
}

func NewDict() *Dict {
	return &Dict{}
}

// Set adds or replaces the value for the given key. Later writes win.
func (dict *Dict) Set(key String, value Value) {
	i := sort.Search(len(dict.members), func(i int) bool {
		return dict.members[i].key >= key
	})

	if i < len(dict.members) && dict.members[i].key == key {
		dict.members[i].value = value
		return
	}

	dict.members = append(dict.members, member{})
	copy(dict.members[i+1:], dict.members[i:])
	dict.members[i] = member{key: key, value: value}
}

func (dict *Dict) Get(key String) (Value, bool) {
	i := sort.Search(len(dict.members), func(i int) bool {
		return dict.members[i].key >= key
	})

	if i < len(dict.members) && dict.members[i].key == key {
		return dict.members[i].value, true
	}

	return nil, false
}

func (dict *Dict) Len() int {
	return len(dict.members)
}

// Keys returns the keys in ascending byte order.
func (dict *Dict) Keys() []String {
	keys := make([]String, len(dict.members))
	for i, member := range dict.members {
		keys[i] = member.key
	}

	return keys
}

func (s String) encode(buf *bytes.Buffer) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(string(s))
}

func (i Integer) encode(buf *bytes.Buffer) {
	buf.WriteByte('i')
	buf.WriteString(strconv.FormatInt(int64(i), 10))
	buf.WriteByte('e')
}

func (list List) encode(buf *bytes.Buffer) {
	buf.WriteByte('l')
	for _, value := range list {
		value.encode(buf)
	}
	buf.WriteByte('e')
}

func (dict *Dict) encode(buf *bytes.Buffer) {
	buf.WriteByte('d')
	for _, member := range dict.members {
		member.key.encode(buf)
		member.value.encode(buf)
	}
	buf.WriteByte('e')
}

// Encode serializes the value into its canonical bencoded form. It never
// fails: a Value cannot represent a non-canonical document.
func Encode(value Value) []byte {
	var buf bytes.Buffer
	value.encode(&buf)
	return buf.Bytes()
}
