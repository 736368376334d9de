// Package types defines the JSON-RPC wire shapes of the MCP surface: the
// request envelope, the four request categories' params and results, and
// the descriptor records they carry.
package types

import "encoding/json"

// ProtocolVersion is the MCP revision this server speaks
const ProtocolVersion = "2024-11-05"

// Request represents a decoded JSON-RPC request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no ID and therefore
// expects no response.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response represents a JSON-RPC response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Error represents a JSON-RPC error object
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ContentBlock is the minimal unit of returned payload. Only text blocks
// are produced today.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextContent creates a text content block
func TextContent(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ContentResult is the single return shape every tool handler produces
type ContentResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// TextResult creates a content result holding a single text block
func TextResult(text string) *ContentResult {
	return &ContentResult{Content: []ContentBlock{TextContent(text)}}
}

// ErrorResult creates a content result flagged as an error. Used where a
// failure must be reported as content rather than as a protocol error.
func ErrorResult(text string) *ContentResult {
	return &ContentResult{Content: []ContentBlock{TextContent(text)}, IsError: true}
}

// Tool is the wire descriptor of one tool
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
}

// ListToolsResult is the result of tools/list
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams are the params of tools/call
type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Resource is the wire descriptor of one static resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ResourceTemplate is the wire descriptor of one resource template
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ListResourcesResult is the result of resources/list
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ListResourceTemplatesResult is the result of resources/templates/list
type ListResourceTemplatesResult struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
}

// ReadResourceParams are the params of resources/read
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents is one entry of a resources/read result
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// ReadResourceResult is the result of resources/read
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// PromptArgument describes one argument of a prompt
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Prompt is the wire descriptor of one prompt
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// ListPromptsResult is the result of prompts/list
type ListPromptsResult struct {
	Prompts []Prompt `json:"prompts"`
}

// GetPromptParams are the params of prompts/get
type GetPromptParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// PromptMessage is one message of a prompts/get result
type PromptMessage struct {
	Role    string       `json:"role"`
	Content ContentBlock `json:"content"`
}

// GetPromptResult is the result of prompts/get
type GetPromptResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}

// ServerInfo identifies the server implementation
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the result of initialize
type InitializeResult struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ServerInfo      ServerInfo             `json:"serverInfo"`
}
