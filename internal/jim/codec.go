package jim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxFrameSize bounds a single read. There is no length prefix and no
// reassembly: anything a peer sends beyond this in one write is cut off and
// the truncated frame fails to decode. Senders must keep frames below it.
const MaxFrameSize = 1024

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrBadRequest     = errors.New("bad request")
)

// Encode serializes m as compact JSON. The result is not checked against
// MaxFrameSize; see Oversized.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Oversized reports whether a peer reading frame would truncate it.
func Oversized(frame []byte) bool {
	return len(frame) > MaxFrameSize
}

// Decode parses one frame. Invalid UTF-8, invalid JSON and non-object
// top-level values are ErrMalformedFrame. Mistyped fields are not: they
// decode and are rejected by Parse.
func Decode(data []byte) (Message, error) {
	if !utf8.Valid(data) {
		return Message{}, fmt.Errorf("%w: invalid utf-8", ErrMalformedFrame)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Message{}, fmt.Errorf("%w: not an object", ErrMalformedFrame)
	}
	var m Message
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return m, nil
}

// ReadFrame performs exactly one Read of at most MaxFrameSize bytes and
// decodes what it got. A read that returns no bytes means the peer closed
// the connection and is reported as io.EOF (or the underlying read error),
// never as ErrMalformedFrame.
func ReadFrame(r io.Reader) (Message, error) {
	buf := make([]byte, MaxFrameSize)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return Message{}, err
	}
	return Decode(buf[:n])
}

// WriteFrame encodes m and writes it with a single Write call.
func WriteFrame(w io.Writer, m Message) error {
	frame, err := Encode(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
