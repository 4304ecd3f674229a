// Package nativemsg frames browser native-messaging traffic: each message
// is a 4-byte little-endian length prefix followed by that many bytes of
// UTF-8 JSON. Logs never touch this channel; a stray byte on stdout
// corrupts the stream.
package nativemsg

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrProtocol marks a framing violation. The channel cannot be trusted
// afterwards; callers terminate the connection instead of resyncing.
var ErrProtocol = errors.New("native messaging protocol violation")

// MaxMessageSize bounds a single frame in either direction. Browsers cap
// host-bound messages well below this; a larger prefix is a malicious or
// corrupt peer and is rejected before any allocation.
const MaxMessageSize = 1 << 20

// Reader decodes length-prefixed JSON frames from a byte stream.
type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read returns the next frame's payload. io.EOF signals an orderly end of
// stream (browser closed the pipe); every other failure is a protocol
// violation.
func (r *Reader) Read() (json.RawMessage, error) {
	var header [4]byte
	if _, err := io.ReadFull(r.r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: short length prefix: %v", ErrProtocol, err)
	}

	length := binary.LittleEndian.Uint32(header[:])
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%w: frame of %d bytes exceeds limit of %d", ErrProtocol, length, MaxMessageSize)
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: zero-length frame", ErrProtocol)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated frame: %v", ErrProtocol, err)
	}
	return payload, nil
}

// Writer encodes values as length-prefixed JSON frames. Responses are
// one-to-one with requests; there is no multiplexing to guard against.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Write(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("%w: response of %d bytes exceeds limit", ErrProtocol, len(payload))
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.w.Write(header[:]); err != nil {
		return fmt.Errorf("write length prefix: %w", err)
	}
	if _, err := w.w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return w.w.Flush()
}
