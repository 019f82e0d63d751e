package jsonrpc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestParseFraming(t *testing.T) {
	cases := map[string]Framing{
		"":               FramingAuto,
		"auto":           FramingAuto,
		"Content-Length": FramingContentLength,
		" ndjson ":       FramingNDJSON,
	}
	for in, want := range cases {
		got, err := ParseFraming(in)
		if err != nil || got != want {
			t.Fatalf("ParseFraming(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFraming("websocket"); err == nil {
		t.Fatalf("expected error for unknown framing")
	}
}

func TestCodecContentLengthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCodec(strings.NewReader(""), &buf, FramingContentLength)
	if err := w.Write([]byte(`{"a":1}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "Content-Length: 7\r\n\r\n{\"a\":1}" {
		t.Fatalf("unexpected frame %q", got)
	}

	r := NewCodec(&buf, io.Discard, FramingContentLength)
	body, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(body) != `{"a":1}` {
		t.Fatalf("unexpected body %q", body)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestCodecNDJSON(t *testing.T) {
	in := "{\"a\":1}\n\n{\"b\":2}"
	var out bytes.Buffer
	c := NewCodec(strings.NewReader(in), &out, FramingNDJSON)
	for _, want := range []string{`{"a":1}`, `{"b":2}`} {
		body, err := c.Read()
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if string(body) != want {
			t.Fatalf("got %q want %q", body, want)
		}
	}
	if _, err := c.Read(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
	if err := c.Write([]byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.String() != "{\"ok\":true}\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCodecAutoAnswersInKind(t *testing.T) {
	in := "{\"n\":1}\nContent-Length: 7\r\n\r\n{\"n\":2}"
	var out bytes.Buffer
	c := NewCodec(strings.NewReader(in), &out, FramingAuto)

	if _, err := c.Read(); err != nil {
		t.Fatalf("Read 1: %v", err)
	}
	_ = c.Write([]byte(`{"r":1}`))
	if out.String() != "{\"r\":1}\n" {
		t.Fatalf("expected ndjson reply, got %q", out.String())
	}

	out.Reset()
	body, err := c.Read()
	if err != nil {
		t.Fatalf("Read 2: %v", err)
	}
	if string(body) != `{"n":2}` {
		t.Fatalf("unexpected body %q", body)
	}
	_ = c.Write([]byte(`{"r":2}`))
	if !strings.HasPrefix(out.String(), "Content-Length: 7\r\n\r\n") {
		t.Fatalf("expected content-length reply, got %q", out.String())
	}
}

func TestCodecFramingErrors(t *testing.T) {
	cases := map[string]string{
		"missing length":  "X-Other: 1\r\n\r\n{}",
		"bad length":      "Content-Length: abc\r\n\r\n{}",
		"short body":      "Content-Length: 10\r\n\r\n{}",
		"oversized body":  "Content-Length: 4611686018427387904\r\n\r\n{}",
		"just over limit": fmt.Sprintf("Content-Length: %d\r\n\r\n{}", MaxMessageBytes+1),
		"overflowing":     "Content-Length: 99999999999999999999999\r\n\r\n{}",
	}
	for name, in := range cases {
		c := NewCodec(strings.NewReader(in), io.Discard, FramingContentLength)
		if _, err := c.Read(); !errors.Is(err, ErrFraming) {
			t.Fatalf("%s: expected ErrFraming, got %v", name, err)
		}
	}
}

func TestNormalizeID(t *testing.T) {
	cases := map[string]string{
		`7`:     "7",
		`"abc"`: "abc",
		`null`:  "",
		``:      "",
	}
	for in, want := range cases {
		if got := NormalizeID([]byte(in)); got != want {
			t.Fatalf("NormalizeID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewErrorUsesNullID(t *testing.T) {
	resp := NewError(nil, CodeParseError, "bad")
	if string(resp.ID) != "null" || resp.Error.Code != CodeParseError {
		t.Fatalf("unexpected response %+v", resp)
	}
}
