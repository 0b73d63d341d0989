package tlv

import (
	"bytes"
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestAppendLength(t *testing.T) {
	tests := []struct {
		length int
		want   []byte
	}{
		{0, []byte{0x00}},
		{4, []byte{0x04}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x80}},
		{255, []byte{0x81, 0xff}},
		{256, []byte{0x82, 0x01, 0x00}},
		{300, []byte{0x82, 0x01, 0x2c}},
		{65535, []byte{0x82, 0xff, 0xff}},
		{1 << 24, []byte{0x84, 0x01, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.length), func(t *testing.T) {
			got := AppendLength(nil, tt.length)
			if !slices.Equal(got, tt.want) {
				t.Errorf("AppendLength(%d) = %# x, want %# x", tt.length, got, tt.want)
			}
			if l := LengthSize(tt.length); l != len(tt.want) {
				t.Errorf("LengthSize(%d) = %d, want %d", tt.length, l, len(tt.want))
			}
			var buf bytes.Buffer
			n, err := WriteLength(&buf, tt.length)
			if err != nil || n != len(tt.want) || !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("WriteLength(%d) = %d, %v (%# x), want %# x", tt.length, n, err, buf.Bytes(), tt.want)
			}
		})
	}
}

func TestReadLength(t *testing.T) {
	tests := map[string]struct {
		data    []byte
		want    int
		wantErr error
	}{
		"Short":          {[]byte{0x04}, 4, nil},
		"LongOneByte":    {[]byte{0x81, 0x80}, 128, nil},
		"LongTwoBytes":   {[]byte{0x82, 0x01, 0x2c}, 300, nil},
		"LeadingZeros":   {[]byte{0x84, 0x00, 0x00, 0x00, 0x03}, 3, nil},
		"FourBytes":      {[]byte{0x84, 0x7f, 0xff, 0xff, 0xff}, 1<<31 - 1, nil},
		"Indefinite":     {[]byte{0x80}, LengthIndefinite, nil},
		"TooManyOctets":  {[]byte{0x85, 0x01, 0x00, 0x00, 0x00, 0x00}, 0, ErrLengthOverflow},
		"Reserved":       {[]byte{0xff}, 0, ErrLengthOverflow},
		"Empty":          {nil, 0, ErrTruncated},
		"TruncatedField": {[]byte{0x82, 0x01}, 0, ErrTruncated},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ReadLength(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadLength(%# x) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ReadLength(%# x) = %d, want %d", tt.data, got, tt.want)
			}
		})
	}
}

func TestLength_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 100, 127, 128, 1000, 70000, 1<<31 - 1} {
		got, err := ReadLength(bytes.NewReader(AppendLength(nil, n)))
		if err != nil || got != n {
			t.Errorf("ReadLength(AppendLength(%d)) = %d, %v", n, got, err)
		}
	}
}
