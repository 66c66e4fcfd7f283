// Package mcp implements a minimal Model Context Protocol server over stdio.
// Framing is newline-delimited JSON-RPC 2.0, per the MCP stdio transport.
// Reference: https://modelcontextprotocol.io/specification/2025-03-26
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/watman/watman/internal/tools"
)

const protocolVersion = "2025-03-26"

// Standard JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type Server struct {
	name     string
	version  string
	registry *tools.Registry

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes writes to out
}

func NewServer(name, version string, registry *tools.Registry, in io.Reader, out io.Writer) *Server {
	return &Server{
		name:     name,
		version:  version,
		registry: registry,
		in:       in,
		out:      out,
	}
}

// --- JSON-RPC framing ---

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Serve reads requests line by line until EOF or context cancellation.
// Requests are handled in order; each tool call completes before the next
// line is read.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(nil, codeParseError, "parse error: "+err.Error())
			continue
		}
		s.handle(ctx, &req)
	}
	return scanner.Err()
}

func (s *Server) handle(ctx context.Context, req *request) {
	switch req.Method {
	case "initialize":
		s.writeResult(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": s.name, "version": s.version},
		})
	case "notifications/initialized":
		// notification, no response
	case "ping":
		s.writeResult(req.ID, map[string]any{})
	case "tools/list":
		s.writeResult(req.ID, map[string]any{"tools": s.toolList()})
	case "tools/call":
		s.handleCall(ctx, req)
	default:
		if req.ID == nil {
			return // unknown notification, ignore
		}
		s.writeError(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) toolList() []map[string]any {
	registered := s.registry.List()
	list := make([]map[string]any, 0, len(registered))
	for _, t := range registered {
		entry := map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
		}
		if p := t.Parameters(); p != nil {
			entry["inputSchema"] = p.Map()
		}
		list = append(list, entry)
	}
	return list
}

func (s *Server) handleCall(ctx context.Context, req *request) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, codeInvalidParams, "invalid tools/call params: "+err.Error())
		return
	}

	envelope, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		// Unknown tool, missing credentials, or cancellation — no envelope
		// can be produced, so this surfaces as a protocol-level error.
		log.Printf("mcp: tools/call %s failed: %v", params.Name, err)
		s.writeError(req.ID, codeInternalError, err.Error())
		return
	}

	text, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		s.writeError(req.ID, codeInternalError, fmt.Sprintf("marshaling %s result: %v", params.Name, err))
		return
	}
	s.writeResult(req.ID, map[string]any{
		"content": []map[string]any{{"type": "text", "text": string(text)}},
	})
}

func (s *Server) writeResult(id json.RawMessage, result any) {
	s.write(&response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id json.RawMessage, code int, message string) {
	s.write(&response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func (s *Server) write(resp *response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("mcp: marshaling response: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Write(append(data, '\n'))
}
