// Package server exposes the rule engine and generator as an MCP-style tool
// server: newline-delimited JSON-RPC 2.0 over stdio. Each request is a
// self-contained computation over the immutable policy document, so requests
// never contend and no locking is needed.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/UtpalJayNadiger/tf-dialect/internal/observability/logging"
	otelobs "github.com/UtpalJayNadiger/tf-dialect/internal/observability/otel"
	"github.com/UtpalJayNadiger/tf-dialect/internal/rules"
	"github.com/UtpalJayNadiger/tf-dialect/internal/version"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ProtocolVersion is the MCP protocol revision the server speaks.
const ProtocolVersion = "2024-11-05"

// Server serves tool calls against one loaded policy document.
type Server struct {
	policy *models.PolicyDocument
	engine *rules.Engine
	log    logging.Logger

	in  io.Reader
	out io.Writer
}

// New wires a server over the given streams. The policy must already be
// loaded and validated; it is borrowed, never mutated.
func New(policy *models.PolicyDocument, engine *rules.Engine, log logging.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{policy: policy, engine: engine, log: log, in: in, out: out}
}

// Run reads requests line by line until the input stream closes or the
// context is cancelled. A request that fails stays isolated: the error is
// returned to the caller and the loop keeps serving.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("server", "listening on stdio", "version", version.BuildVersion())

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

		var req models.JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(nil, models.RPCParseError, fmt.Sprintf("parse error: %v", err))
			continue
		}
		s.handle(ctx, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("server: read failed: %w", err)
	}

	s.log.Info("server", "input stream closed, shutting down")
	return nil
}

func (s *Server) handle(ctx context.Context, req models.JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.writeResult(req.ID, models.InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: models.Capabilities{
				Tools: map[string]interface{}{},
			},
			ServerInfo: models.ServerInfo{
				Name:    "tf-dialect",
				Version: version.BuildVersion(),
			},
		})
	case "notifications/initialized", "notifications/cancelled":
		// notifications get no response
	case "ping":
		s.writeResult(req.ID, map[string]interface{}{})
	case "tools/list":
		s.writeResult(req.ID, models.ToolsListResult{Tools: toolDescriptors()})
	case "tools/call":
		s.handleToolCall(ctx, req)
	default:
		if req.ID == nil {
			return // unknown notification, ignore
		}
		s.writeError(req.ID, models.RPCMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) handleToolCall(ctx context.Context, req models.JSONRPCRequest) {
	var params models.ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, models.RPCInvalidParams, fmt.Sprintf("invalid tools/call params: %v", err))
		return
	}

	ctx, span := s.startSpan(ctx, "tfdialect."+params.Name)
	defer span.End()

	payload, err := s.dispatch(ctx, params.Name, params.Arguments, span)
	if err != nil {
		s.log.Warn("server", "tool call failed", "tool", params.Name, "error", err.Error())
		s.writeError(req.ID, models.RPCInvalidParams, err.Error())
		return
	}
	s.log.Event(ctx, "tool.call", map[string]any{"tool": params.Name})

	data, err := json.Marshal(payload)
	if err != nil {
		s.writeError(req.ID, models.RPCInternalError, fmt.Sprintf("failed to encode result: %v", err))
		return
	}
	s.writeResult(req.ID, models.ToolCallResult{
		Content: []models.ContentPart{{Type: "text", Text: string(data)}},
	})
}

// startSpan opens a tracing span when OTel is enabled; otherwise it returns
// a no-op span so call sites stay unconditional.
func (s *Server) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if h := otelobs.From(ctx); h != nil {
		return h.Tracer.Start(ctx, name, trace.WithAttributes(
			attribute.String("tfdialect.tool", name),
		))
	}
	return noop.NewTracerProvider().Tracer("tf-dialect").Start(ctx, name)
}

func (s *Server) writeResult(id interface{}, result interface{}) {
	s.write(models.JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id interface{}, code int, message string) {
	s.write(models.JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &models.RPCError{Code: code, Message: message}})
}

func (s *Server) write(resp models.JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("server", "failed to marshal response", "error", err.Error())
		return
	}
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.log.Error("server", "failed to write response", "error", err.Error())
	}
}
