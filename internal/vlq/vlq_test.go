package vlq

import (
	"errors"
	"slices"
	"testing"
)

func TestAppend(t *testing.T) {
	tests := map[string]struct {
		prefix []byte
		value  uint64
		want   []byte
	}{
		"Zero":      {nil, 0, []byte{0x00}},
		"OneByte":   {nil, 127, []byte{0x7f}},
		"TwoBytes":  {nil, 840, []byte{0x86, 0x48}},
		"Boundary":  {nil, 128, []byte{0x81, 0x00}},
		"Prefix":    {[]byte{0x2a}, 113549, []byte{0x2a, 0x86, 0xf7, 0x0d}},
		"MaxUint64": {nil, 1<<64 - 1, []byte{0x81, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Append(tc.prefix, tc.value)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Append(%# x, %d) = %# x, want %# x", tc.prefix, tc.value, got, tc.want)
			}
			if l := Len(tc.value); l != len(tc.want)-len(tc.prefix) {
				t.Errorf("Len(%d) = %d, want %d", tc.value, l, len(tc.want)-len(tc.prefix))
			}
			v, n, err := Parse(got[len(tc.prefix):])
			if err != nil || v != tc.value || n != len(got)-len(tc.prefix) {
				t.Errorf("Parse(Append(%d)) = %d, %d, %v", tc.value, v, n, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    uint64
		wantN   int
		wantErr error
	}{
		"SingleByte":   {[]byte{0x05}, 5, 1, nil},
		"MultiByte":    {[]byte{0x85, 0x01, 0x00}, 641, 2, nil},
		"LeadingZeros": {[]byte{0x80, 0x80, 0x05}, 5, 3, nil},
		"Empty":        {nil, 0, 0, ErrTruncated},
		"Truncated":    {[]byte{0x81, 0x80}, 0, 2, ErrTruncated},
		"Overflow":     {[]byte{0x82, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, 10, ErrOverflow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, n, err := Parse(tc.data)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Parse(%# x) error = %v, wantErr %v", tc.data, err, tc.wantErr)
			}
			if v != tc.want || n != tc.wantN {
				t.Errorf("Parse(%# x) = %d, %d, want %d, %d", tc.data, v, n, tc.want, tc.wantN)
			}
		})
	}
}

func BenchmarkAppend(b *testing.B) {
	buf := make([]byte, 0, 16)
	for i := uint64(0); b.Loop(); i++ {
		buf = Append(buf[:0], i)
	}
}
