package tlv

import (
	"bytes"
	"io"
)

// recordingReader reads single bytes from r and records them in buf.
type recordingReader struct {
	r   io.Reader
	br  io.ByteReader // r as an io.ByteReader, if supported
	buf []byte
	one [1]byte
}

func (rr *recordingReader) ReadByte() (b byte, err error) {
	if rr.br != nil {
		b, err = rr.br.ReadByte()
	} else if _, err = io.ReadFull(rr.r, rr.one[:]); err == nil {
		b = rr.one[0]
	}
	if err == nil {
		rr.buf = append(rr.buf, b)
	}
	return b, err
}

// ReadElement reads exactly one complete top-level TLV from r and returns its
// encoding, including the header. ReadElement never reads past the end of the
// element, so it can be used to consume consecutive elements from a stream.
//
// If r is at its end before the first byte, io.EOF is returned. A header that
// uses the indefinite-length format results in a [*SyntaxError] wrapping
// [ErrIndefiniteLength]. If r ends before the element is complete, the error
// wraps [ErrTruncated].
//
// The contents are read incrementally, a header declaring a huge length does
// not cause a large allocation unless the data is actually present.
func ReadElement(r io.Reader) ([]byte, error) {
	rr := &recordingReader{r: r, buf: make([]byte, 0, 16)}
	rr.br, _ = r.(io.ByteReader)

	h, err := ReadHeader(rr)
	if err == io.EOF {
		return nil, err
	} else if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if h.Length == LengthIndefinite {
		return nil, &SyntaxError{Err: ErrIndefiniteLength, Header: h}
	}

	buf := bytes.NewBuffer(rr.buf)
	n, err := io.CopyN(buf, r, int64(h.Length))
	if err != nil {
		return nil, &SyntaxError{Err: truncated(err), ByteOffset: int64(len(rr.buf)) + n, Header: h}
	}
	return buf.Bytes(), nil
}
