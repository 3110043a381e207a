package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"hpo-ontology-gateway/services"
)

// MCPServer speaks the Model Context Protocol over stdio. Each ontology
// operation is exposed as a named tool; the server owns only dispatch and
// the response envelope, never hierarchy logic.
type MCPServer struct {
	name        string
	version     string
	description string
	tools       map[string]MCPTool
	services    *services.ServiceContainer
	logger      services.Logger
	stdin       io.Reader
	stdout      io.Writer
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
}

// NewMCPServer creates a new MCP server wired to the given services
func NewMCPServer(name, version, description string, container *services.ServiceContainer) *MCPServer {
	ctx, cancel := context.WithCancel(context.Background())

	logger := container.Logger
	if logger == nil {
		logger = services.NewDefaultLogger()
	}

	server := &MCPServer{
		name:        name,
		version:     version,
		description: description,
		tools:       make(map[string]MCPTool),
		services:    container,
		logger:      logger,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		ctx:         ctx,
		cancel:      cancel,
	}

	server.registerDefaultTools()

	return server
}

// MCPMessage is the JSON-RPC 2.0 message envelope
type MCPMessage struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Method  string      `json:"method,omitempty"`
	Params  interface{} `json:"params,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the JSON-RPC error object
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPTool is one callable operation. Execute receives the raw, loosely
// typed argument map and must guard its own argument shapes before making
// any remote call.
type MCPTool interface {
	GetName() string
	GetDescription() string
	GetInputSchema() map[string]interface{}
	Execute(ctx context.Context, params map[string]interface{}) (*MCPToolResult, error)
}

// MCPToolResult is the result envelope of one tool call
type MCPToolResult struct {
	Content []MCPContent `json:"content"`
	IsError bool         `json:"isError"`
}

// MCPContent is one content block of a tool result
type MCPContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Start reads newline-delimited JSON-RPC messages from stdin until EOF
func (s *MCPServer) Start() error {
	s.logger.Info("Starting MCP server",
		services.String("name", s.name),
		services.String("version", s.version))

	scanner := bufio.NewScanner(s.stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		if err := s.handleMessage(line); err != nil {
			s.logger.Error("Error handling message", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}

	return nil
}

// Stop stops the server loop
func (s *MCPServer) Stop() {
	s.logger.Info("Stopping MCP server", services.String("name", s.name))
	s.cancel()
}

// handleMessage dispatches one JSON-RPC message
func (s *MCPServer) handleMessage(line string) error {
	var msg MCPMessage
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		return s.sendError(nil, -32700, "Parse error", err.Error())
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(&msg)
	case "tools/list":
		return s.handleToolsList(&msg)
	case "tools/call":
		return s.handleToolsCall(&msg)
	default:
		return s.sendError(msg.ID, -32601, "Method not found", nil)
	}
}

// handleInitialize answers the protocol handshake
func (s *MCPServer) handleInitialize(msg *MCPMessage) error {
	result := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{
				"listChanged": false,
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    s.name,
			"version": s.version,
		},
	}

	return s.sendResult(msg.ID, result)
}

// handleToolsList lists every registered tool
func (s *MCPServer) handleToolsList(msg *MCPMessage) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tools []map[string]interface{}
	for _, tool := range s.tools {
		tools = append(tools, map[string]interface{}{
			"name":        tool.GetName(),
			"description": tool.GetDescription(),
			"inputSchema": tool.GetInputSchema(),
		})
	}

	result := map[string]interface{}{
		"tools": tools,
	}

	return s.sendResult(msg.ID, result)
}

// handleToolsCall invokes one tool
func (s *MCPServer) handleToolsCall(msg *MCPMessage) error {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return s.sendError(msg.ID, -32602, "Invalid params", nil)
	}

	toolName, ok := params["name"].(string)
	if !ok {
		return s.sendError(msg.ID, -32602, "Missing tool name", nil)
	}

	arguments, ok := params["arguments"].(map[string]interface{})
	if !ok {
		arguments = make(map[string]interface{})
	}

	s.mu.RLock()
	tool, exists := s.tools[toolName]
	s.mu.RUnlock()

	if !exists {
		return s.sendError(msg.ID, -32601, "Tool not found", nil)
	}

	result, err := tool.Execute(s.ctx, arguments)
	if err != nil {
		return s.sendError(msg.ID, -32603, "Tool execution failed", err.Error())
	}

	return s.sendResult(msg.ID, result)
}

// sendResult sends a success response
func (s *MCPServer) sendResult(id interface{}, result interface{}) error {
	response := MCPMessage{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	return s.sendMessage(response)
}

// sendError sends an error response
func (s *MCPServer) sendError(id interface{}, code int, message string, data interface{}) error {
	response := MCPMessage{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	return s.sendMessage(response)
}

// sendMessage writes one newline-delimited JSON message to stdout
func (s *MCPServer) sendMessage(msg MCPMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = fmt.Fprintf(s.stdout, "%s\n", data)
	return err
}

// RegisterTool registers a tool by name
func (s *MCPServer) RegisterTool(tool MCPTool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[tool.GetName()] = tool
}

// registerDefaultTools registers the ontology tool set
func (s *MCPServer) registerDefaultTools() {
	s.RegisterTool(NewGetTermTool(s))
	s.RegisterTool(NewGetParentsTool(s))
	s.RegisterTool(NewGetChildrenTool(s))
	s.RegisterTool(NewGetAncestorsTool(s))
	s.RegisterTool(NewGetDescendantsTool(s))
	s.RegisterTool(NewGetTermPathTool(s))
	s.RegisterTool(NewCompareTermsTool(s))
	s.RegisterTool(NewGetTermStatsTool(s))
	s.RegisterTool(NewBatchGetTermsTool(s))

	s.logger.Info("MCP tool registration complete", services.Int("tools", len(s.tools)))
}

// SetIO overrides the server's streams, mainly for tests
func (s *MCPServer) SetIO(stdin io.Reader, stdout io.Writer) {
	s.stdin = stdin
	s.stdout = stdout
}
