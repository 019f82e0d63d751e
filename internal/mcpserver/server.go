// Package mcpserver serves the tool catalogue over a JSON-RPC 2.0 stream
// using the MCP methods initialize, ping, tools/list and tools/call.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mwiater/langchain-mcp/internal/dispatch"
	"github.com/mwiater/langchain-mcp/internal/jsonrpc"
	"github.com/mwiater/langchain-mcp/internal/logging"
	"github.com/mwiater/langchain-mcp/mcp/tools"
)

// ProtocolVersion is announced when the client does not request one.
const ProtocolVersion = "2024-11-05"

// Info identifies the server in the initialize handshake.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DefaultInfo matches the name and version hosts already know this server by.
var DefaultInfo = Info{Name: "langchain-anthropic-server", Version: "1.0.0"}

// Server answers MCP requests from a single stream.
type Server struct {
	dispatcher *dispatch.Dispatcher
	info       Info
	framing    jsonrpc.Framing
	session    string
}

// Option configures a Server.
type Option func(*Server)

// WithInfo overrides the advertised server name and version.
func WithInfo(info Info) Option {
	return func(s *Server) {
		if info.Name != "" {
			s.info.Name = info.Name
		}
		if info.Version != "" {
			s.info.Version = info.Version
		}
	}
}

// WithFraming fixes the stream framing instead of detecting it.
func WithFraming(f jsonrpc.Framing) Option {
	return func(s *Server) { s.framing = f }
}

// New returns a server routing tool calls to d.
func New(d *dispatch.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		info:       DefaultInfo,
		framing:    jsonrpc.FramingAuto,
		session:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session is the id attached to this server's log lines.
func (s *Server) Session() string { return s.session }

type frame struct {
	body []byte
	err  error
}

// Serve reads requests from r and writes responses to w until r is
// exhausted, the stream becomes unreadable, or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	codec := jsonrpc.NewCodec(r, w, s.framing)
	logging.LogEvent("MCP server %s %s started (session=%s)", s.info.Name, s.info.Version, s.session)

	frames := make(chan frame)
	go func() {
		for {
			body, err := codec.Read()
			select {
			case frames <- frame{body: body, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		var f frame
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f = <-frames:
		}
		if f.err != nil {
			if errors.Is(f.err, io.EOF) {
				logging.LogEvent("MCP client closed the stream (session=%s)", s.session)
				return nil
			}
			// The stream can't be resynchronized; report and stop.
			_ = s.write(codec, jsonrpc.NewError(nil, jsonrpc.CodeParseError, f.err.Error()), "")
			return f.err
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(f.body, &req); err != nil {
			logging.LogRequest("in", s.session, "", f.body)
			if werr := s.write(codec, jsonrpc.NewError(nil, jsonrpc.CodeParseError, "Parse error: "+err.Error()), ""); werr != nil {
				return werr
			}
			continue
		}

		tool := toolName(&req)
		logging.LogRequest("in", s.session, tool, f.body)
		resp := s.Handle(ctx, &req)
		if resp == nil {
			continue
		}
		if err := s.write(codec, resp, tool); err != nil {
			return err
		}
	}
}

func (s *Server) write(codec *jsonrpc.Codec, resp *jsonrpc.Response, tool string) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	logging.LogRequest("out", s.session, tool, data)
	return codec.Write(data)
}

type initializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// CallResult is the tools/call result payload.
type CallResult struct {
	Content []tools.ContentPart `json:"content"`
	IsError bool                `json:"isError"`
}

// Handle answers one request. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	if req.JSONRPC != jsonrpc.Version {
		if req.IsNotification() {
			return nil
		}
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidRequest, fmt.Sprintf("Invalid Request: jsonrpc must be %q", jsonrpc.Version))
	}

	var (
		result any
		rpcErr *jsonrpc.Response
	)
	switch req.Method {
	case "initialize":
		var p initializeParams
		if len(req.Params) > 0 {
			_ = json.Unmarshal(req.Params, &p)
		}
		version := p.ProtocolVersion
		if version == "" {
			version = ProtocolVersion
		}
		result = map[string]any{
			"protocolVersion": version,
			"serverInfo":      s.info,
			"capabilities":    map[string]any{"tools": map[string]any{}},
		}

	case "ping":
		result = map[string]any{}

	case "tools/list":
		result = map[string]any{"tools": s.dispatcher.List()}

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) == 0 {
			rpcErr = jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "Invalid params: missing tool name")
			break
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			rpcErr = jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "Invalid params: "+err.Error())
			break
		}
		resp := s.dispatcher.Call(ctx, dispatch.Request{ToolName: p.Name, Arguments: p.Arguments})
		result = CallResult{
			Content: []tools.ContentPart{{Type: "text", Text: resp.Content}},
			IsError: resp.IsError,
		}

	default:
		rpcErr = jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}

	if req.IsNotification() {
		return nil
	}
	if rpcErr != nil {
		return rpcErr
	}
	resp, err := jsonrpc.NewResult(req.ID, result)
	if err != nil {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInternalError, err.Error())
	}
	return resp
}

// toolName extracts the tool of a tools/call request for log lines.
func toolName(req *jsonrpc.Request) string {
	if req.Method != "tools/call" || len(req.Params) == 0 {
		return req.Method
	}
	var p struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(req.Params, &p); err != nil || p.Name == "" {
		return req.Method
	}
	return p.Name
}
