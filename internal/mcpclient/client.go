// Package mcpclient is a minimal client for the MCP tool methods, speaking
// the same framing as the server.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/mwiater/langchain-mcp/internal/jsonrpc"
	"github.com/mwiater/langchain-mcp/internal/mcpserver"
	"github.com/mwiater/langchain-mcp/mcp/tools"
)

// Client issues one request at a time over a stream pair. A single reader
// goroutine owns the input stream; responses to abandoned requests are
// discarded by id.
type Client struct {
	codec *jsonrpc.Codec

	rpcMu sync.Mutex
	seq   int64

	readerOnce sync.Once
	frames     chan []byte
	readErr    error
}

// New wraps the server's stdout (r) and stdin (w). Auto framing is not
// meaningful for a client; it falls back to content-length.
func New(r io.Reader, w io.Writer, framing jsonrpc.Framing) *Client {
	if framing == jsonrpc.FramingAuto || framing == "" {
		framing = jsonrpc.FramingContentLength
	}
	return &Client{codec: jsonrpc.NewCodec(r, w, framing), frames: make(chan []byte)}
}

// ToolInfo is a tool as advertised by tools/list. The schema is kept raw.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Initialize performs the handshake and returns the server info.
func (c *Client) Initialize(ctx context.Context) (mcpserver.Info, error) {
	var result struct {
		ServerInfo mcpserver.Info `json:"serverInfo"`
	}
	params := map[string]any{
		"protocolVersion": mcpserver.ProtocolVersion,
		"clientInfo":      map[string]any{"name": "langchain-mcp-client", "version": "0.1.0"},
		"capabilities":    map[string]any{},
	}
	if err := c.call(ctx, "initialize", params, &result); err != nil {
		return mcpserver.Info{}, err
	}
	if err := c.notify("notifications/initialized"); err != nil {
		return mcpserver.Info{}, err
	}
	return result.ServerInfo, nil
}

// ListTools fetches the advertised tools.
func (c *Client) ListTools(ctx context.Context) ([]ToolInfo, error) {
	var result struct {
		Tools []ToolInfo `json:"tools"`
	}
	if err := c.call(ctx, "tools/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a tool and returns its concatenated text content.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	if args == nil {
		args = map[string]any{}
	}
	var result struct {
		Content []tools.ContentPart `json:"content"`
		IsError bool                `json:"isError"`
	}
	if err := c.call(ctx, "tools/call", map[string]any{"name": name, "arguments": args}, &result); err != nil {
		return "", false, err
	}
	var text string
	for _, part := range result.Content {
		if part.Type == "text" {
			text += part.Text
		}
	}
	return text, result.IsError, nil
}

func (c *Client) nextID() int64 {
	c.seq++
	return c.seq
}

func (c *Client) notify(method string) error {
	data, err := json.Marshal(map[string]any{"jsonrpc": jsonrpc.Version, "method": method})
	if err != nil {
		return err
	}
	c.rpcMu.Lock()
	defer c.rpcMu.Unlock()
	return c.codec.Write(data)
}

func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	c.rpcMu.Lock()
	defer c.rpcMu.Unlock()

	id := c.nextID()
	payload := map[string]any{
		"jsonrpc": jsonrpc.Version,
		"id":      id,
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := c.codec.Write(data); err != nil {
		return err
	}

	want := strconv.FormatInt(id, 10)
	var resp jsonrpc.Response
	for {
		resp, err = c.readResponse(ctx)
		if err != nil {
			return err
		}
		got := jsonrpc.NormalizeID(resp.ID)
		if got == want {
			break
		}
		if n, perr := strconv.ParseInt(got, 10, 64); perr == nil && n < id {
			// Late answer to a request whose caller gave up.
			continue
		}
		return fmt.Errorf("%s: response id %q does not match request id %d", method, got, id)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}

func (c *Client) readResponse(ctx context.Context) (jsonrpc.Response, error) {
	c.readerOnce.Do(func() { go c.readLoop() })

	select {
	case <-ctx.Done():
		return jsonrpc.Response{}, ctx.Err()
	case body, ok := <-c.frames:
		if !ok {
			return jsonrpc.Response{}, c.readErr
		}
		var resp jsonrpc.Response
		err := json.Unmarshal(body, &resp)
		return resp, err
	}
}

// readLoop is the only reader of the codec. It stops at the first read
// error, which later calls then report.
func (c *Client) readLoop() {
	for {
		body, err := c.codec.Read()
		if err != nil {
			c.readErr = err
			close(c.frames)
			return
		}
		c.frames <- body
	}
}
