package reader

import (
	"encoding/binary"
	"errors"
	"io"

	"psddiff/internal/psd/dialect"
)

// errCancelled unwinds the parse goroutine when the caller stops
// pulling leaves (Close called before EOF). It never reaches the
// caller: run() treats it as "stop, don't send".
var errCancelled = errors.New("reader: cancelled")

// countingReader wraps a forward-only source and tracks how many
// bytes have been consumed, which becomes each leaf's end-of-read
// offset (offset = current count - length-just-read).
type countingReader struct {
	r      io.Reader
	offset int64
}

func (c *countingReader) readFull(buf []byte) error {
	n, err := io.ReadFull(c.r, buf)
	c.offset += int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return truncated("read", err)
		}
		return ioErr("read", err)
	}
	return nil
}

func (c *countingReader) readN(n int64) ([]byte, error) {
	if n < 0 {
		return nil, lengthOverflow("negative length")
	}
	buf := make([]byte, n)
	if err := c.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// discardN advances past n bytes without retaining them, used for
// leaves whose bytes the structural reader never needs to inspect.
func (c *countingReader) discardN(n int64) error {
	if n < 0 {
		return lengthOverflow("negative length")
	}
	copied, err := io.CopyN(io.Discard, c.r, n)
	c.offset += copied
	if err != nil {
		if err == io.EOF {
			return truncated("discard", err)
		}
		return ioErr("discard", err)
	}
	return nil
}

// copyToEOF copies everything remaining on the source, returning the
// number of bytes copied. Used for the trailing image-data leaf, whose
// length is only known once the stream ends.
func (c *countingReader) copyToEOF(w io.Writer) (int64, error) {
	n, err := io.Copy(w, c.r)
	c.offset += n
	if err != nil {
		return n, ioErr("copy-to-eof", err)
	}
	return n, nil
}

func (c *countingReader) readU8() (uint8, error) {
	b, err := c.readN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *countingReader) readU16() (uint16, error) {
	b, err := c.readN(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (c *countingReader) readI16() (int16, error) {
	v, err := c.readU16()
	return int16(v), err
}

// readLength reads a dialect-width length field (u32 for PSD, u64 for
// PSB), tracking the offset the same way every other field read does.
func (c *countingReader) readLength(d dialect.Dialect) (uint64, error) {
	b, err := c.readN(int64(d.LengthWidth()))
	if err != nil {
		return 0, err
	}
	if d.LengthWidth() == 8 {
		return binary.BigEndian.Uint64(b), nil
	}
	return uint64(binary.BigEndian.Uint32(b)), nil
}

func (c *countingReader) readU32() (uint32, error) {
	b, err := c.readN(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// pad rounds n up to the next multiple of unit, per spec.md's
// pad(n, m) = n + ((m - n % m) % m).
func pad(n, unit int64) int64 {
	return n + ((unit - n%unit) % unit)
}
