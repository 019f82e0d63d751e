package jsonrpc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Framing selects how messages are delimited on the stream.
type Framing string

const (
	// FramingAuto detects the framing of each incoming message and answers
	// in kind.
	FramingAuto Framing = "auto"
	// FramingContentLength uses LSP-style Content-Length headers.
	FramingContentLength Framing = "content-length"
	// FramingNDJSON uses one JSON document per line.
	FramingNDJSON Framing = "ndjson"
)

// ParseFraming validates a framing name. The empty string means auto.
func ParseFraming(s string) (Framing, error) {
	switch f := Framing(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FramingAuto:
		return FramingAuto, nil
	case FramingContentLength, FramingNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown framing %q (want auto, content-length or ndjson)", s)
	}
}

// MaxMessageBytes bounds a single Content-Length body.
const MaxMessageBytes = 4 << 20

// ErrFraming reports a stream that can no longer be read reliably.
var ErrFraming = errors.New("framing error")

// Codec reads and writes framed messages. Reads must come from a single
// goroutine; writes are serialized.
type Codec struct {
	r    *bufio.Reader
	w    *bufio.Writer
	mode Framing

	wmu  sync.Mutex
	last Framing
}

// NewCodec wraps a stream pair.
func NewCodec(r io.Reader, w io.Writer, mode Framing) *Codec {
	if mode == "" {
		mode = FramingAuto
	}
	return &Codec{r: bufio.NewReader(r), w: bufio.NewWriter(w), mode: mode, last: FramingContentLength}
}

// Read returns the body of the next message, or io.EOF at end of stream.
func (c *Codec) Read() ([]byte, error) {
	mode := c.mode
	if mode == FramingAuto {
		detected, err := c.detect()
		if err != nil {
			return nil, err
		}
		mode = detected
	}
	c.wmu.Lock()
	c.last = mode
	c.wmu.Unlock()

	if mode == FramingNDJSON {
		return c.readLine()
	}
	return c.readContentLength()
}

// detect skips blank space between messages and peeks at the first byte:
// a JSON document starts with '{' or '[', anything else is a header.
func (c *Codec) detect() (Framing, error) {
	for {
		b, err := c.r.Peek(1)
		if err != nil {
			return "", err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = c.r.ReadByte()
			continue
		case '{', '[':
			return FramingNDJSON, nil
		default:
			return FramingContentLength, nil
		}
	}
}

func (c *Codec) readLine() ([]byte, error) {
	for {
		line, err := c.r.ReadBytes('\n')
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 {
			return trimmed, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (c *Codec) readContentLength() ([]byte, error) {
	// Read headers until blank line
	headers := map[string]string{}
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			if err == io.EOF && len(headers) == 0 && strings.TrimSpace(line) == "" {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: reading headers: %v", ErrFraming, err)
		}
		s := strings.TrimRight(line, "\r\n")
		if s == "" {
			if len(headers) == 0 {
				continue
			}
			break
		}
		if i := strings.IndexByte(s, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(s[:i]))
			headers[key] = strings.TrimSpace(s[i+1:])
		}
	}
	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("%w: missing Content-Length", ErrFraming)
	}
	var length int
	if _, err := fmt.Sscanf(clStr, "%d", &length); err != nil || length < 0 {
		return nil, fmt.Errorf("%w: invalid Content-Length %q", ErrFraming, clStr)
	}
	if length > MaxMessageBytes {
		return nil, fmt.Errorf("%w: Content-Length %d exceeds %d bytes", ErrFraming, length, MaxMessageBytes)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFraming, err)
	}
	return body, nil
}

// Write frames data using the configured framing, or in auto mode the
// framing of the last message read.
func (c *Codec) Write(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	mode := c.mode
	if mode == FramingAuto {
		mode = c.last
	}
	if mode == FramingNDJSON {
		if _, err := c.w.Write(data); err != nil {
			return err
		}
		if err := c.w.WriteByte('\n'); err != nil {
			return err
		}
		return c.w.Flush()
	}
	if _, err := fmt.Fprintf(c.w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := c.w.Write(data); err != nil {
		return err
	}
	return c.w.Flush()
}
