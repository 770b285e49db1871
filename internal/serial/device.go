package serial

import (
	"bytes"
	"io"
)

// Device is a device that can be attached to the Controller. A
// transfer exchanges a whole byte at once.
type Device interface {
	// Exchange receives the byte sent by the Game Boy and returns the
	// byte shifted back in.
	Exchange(out byte) (in byte)
}

// nullDevice is an implementation of Device that behaves as if
// nothing is plugged in, so every bit shifted in reads as 1.
type nullDevice struct{}

// Exchange always returns 0xFF.
func (n nullDevice) Exchange(byte) byte { return 0xFF }

// WriterDevice writes every byte sent by the Game Boy to an
// io.Writer. Test ROMs commonly report their results this way.
type WriterDevice struct {
	w io.Writer
}

// NewWriterDevice returns a device writing to w.
func NewWriterDevice(w io.Writer) *WriterDevice {
	return &WriterDevice{w: w}
}

// Exchange writes out and returns 0xFF.
func (d *WriterDevice) Exchange(out byte) byte {
	_, _ = d.w.Write([]byte{out})
	return 0xFF
}

// Buffer is a Device that records everything sent to it.
type Buffer struct {
	bytes.Buffer
}

// Exchange records out and returns 0xFF.
func (b *Buffer) Exchange(out byte) byte {
	b.WriteByte(out)
	return 0xFF
}
