// Package dispatcher is the single seam between the transport-level decoded
// request and all business logic. It determines the request category,
// resolves the target handler through the registry, invokes it, and
// normalizes the result or error into the wire response shape.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
)

// Dispatcher routes decoded requests to registered handlers. It is
// stateless between requests; concurrent requests are independent
// invocations.
type Dispatcher struct {
	registry *registry.Registry
	info     types.ServerInfo
	logger   *logging.Logger
}

// New creates a dispatcher over the given registry
func New(reg *registry.Registry, info types.ServerInfo) *Dispatcher {
	return &Dispatcher{
		registry: reg,
		info:     info,
		logger:   logging.ServerLogger,
	}
}

// Dispatch handles one decoded request and returns the response to send,
// or nil for notifications.
func (d *Dispatcher) Dispatch(ctx context.Context, req *types.Request) *types.Response {
	d.logger.Debug("dispatching request", logging.String("method", req.Method))

	if req.IsNotification() {
		// Notifications expect no response; only the initialized signal is
		// recognized today.
		return nil
	}

	switch req.Method {
	case "initialize":
		return d.success(req, types.InitializeResult{
			ProtocolVersion: types.ProtocolVersion,
			Capabilities: map[string]interface{}{
				"tools":     map[string]interface{}{},
				"resources": map[string]interface{}{},
				"prompts":   map[string]interface{}{},
			},
			ServerInfo: d.info,
		})
	case "ping":
		return d.success(req, map[string]interface{}{})
	case "tools/list":
		return d.success(req, types.ListToolsResult{Tools: d.registry.Tools()})
	case "tools/call":
		return d.callTool(ctx, req)
	case "resources/list":
		return d.success(req, types.ListResourcesResult{Resources: d.registry.Resources()})
	case "resources/templates/list":
		return d.success(req, types.ListResourceTemplatesResult{ResourceTemplates: d.registry.ResourceTemplates()})
	case "resources/read":
		return d.readResource(ctx, req)
	case "prompts/list":
		return d.success(req, types.ListPromptsResult{Prompts: d.registry.Prompts()})
	case "prompts/get":
		return d.getPrompt(ctx, req)
	default:
		return d.failure(req, errors.MethodNotFound(req.Method))
	}
}

// callTool resolves a tool by exact name, validates its arguments against
// the declared schema, and invokes the handler with the validated input.
func (d *Dispatcher) callTool(ctx context.Context, req *types.Request) *types.Response {
	var params types.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return d.failure(req, errors.InvalidParams("server", "tools/call", fmt.Sprintf("invalid params: %v", err)))
	}

	tool, ok := d.registry.ResolveTool(params.Name)
	if !ok {
		return d.failure(req, errors.ToolNotFound(params.Name))
	}

	args := params.Arguments
	if tool.InputSchema != nil {
		validated, verr := tool.InputSchema.Validate(args)
		if verr != nil {
			return d.failure(req, verr)
		}
		args = validated
	}

	result, err := d.invokeTool(ctx, tool, args)
	if err != nil {
		return d.failure(req, errors.Classify(err, "tool", params.Name))
	}

	d.logger.Debug("tool call succeeded",
		logging.String("name", params.Name),
		logging.Int("blocks", len(result.Content)))
	return d.success(req, result)
}

// readResource resolves a URI through the registry, static resources
// before templates, and wraps the handler's content in the wire envelope.
func (d *Dispatcher) readResource(ctx context.Context, req *types.Request) *types.Response {
	var params types.ReadResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return d.failure(req, errors.InvalidParams("server", "resources/read", fmt.Sprintf("invalid params: %v", err)))
	}

	handler, mimeType, ok := d.registry.ResolveResource(params.URI)
	if !ok {
		return d.failure(req, errors.ResourceNotFound(params.URI))
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	result, err := d.invokeResource(ctx, handler)
	if err != nil {
		return d.failure(req, errors.Classify(err, "resource", params.URI))
	}

	contents := make([]types.ResourceContents, 0, len(result.Content))
	for _, block := range result.Content {
		contents = append(contents, types.ResourceContents{
			URI:      params.URI,
			MIMEType: mimeType,
			Text:     block.Text,
		})
	}
	return d.success(req, types.ReadResourceResult{Contents: contents})
}

// getPrompt resolves a prompt handler by exact name and invokes it
func (d *Dispatcher) getPrompt(ctx context.Context, req *types.Request) *types.Response {
	var params types.GetPromptParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return d.failure(req, errors.InvalidParams("server", "prompts/get", fmt.Sprintf("invalid params: %v", err)))
	}

	prompt, ok := d.registry.ResolvePrompt(params.Name)
	if !ok {
		return d.failure(req, errors.PromptNotFound(params.Name))
	}

	result, err := prompt.Handler(ctx, params.Arguments)
	if err != nil {
		return d.failure(req, errors.Classify(err, "prompt", params.Name))
	}
	return d.success(req, result)
}

// invokeTool runs a tool handler, converting a panic into a normal error so
// a misbehaving handler can never take the process down.
func (d *Dispatcher) invokeTool(ctx context.Context, tool *registry.Tool, args map[string]interface{}) (result *types.ContentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.ToolError(tool.Name, fmt.Sprintf("handler panicked: %v", r))
		}
	}()
	return tool.Handler(ctx, args)
}

// invokeResource runs a resource handler with the same panic containment
// as invokeTool.
func (d *Dispatcher) invokeResource(ctx context.Context, handler registry.ResourceHandler) (result *types.ContentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.ResourceError("read", fmt.Sprintf("handler panicked: %v", r))
		}
	}()
	return handler(ctx)
}

// success builds a result response mirroring the request ID
func (d *Dispatcher) success(req *types.Request, result interface{}) *types.Response {
	return &types.Response{
		JSONRPC: "2.0",
		Result:  result,
		ID:      req.ID,
	}
}

// failure builds an error response from a typed error. Handlers' typed
// errors arrive here unchanged; untyped ones were classified by the caller.
func (d *Dispatcher) failure(req *types.Request, mcpErr *errors.MCPError) *types.Response {
	d.logger.Warn("request failed",
		logging.String("method", req.Method),
		logging.Int("code", mcpErr.Code),
		logging.Error(mcpErr))
	return &types.Response{
		JSONRPC: "2.0",
		Error: &types.Error{
			Code:    mcpErr.Code,
			Message: mcpErr.WireMessage(),
		},
		ID: req.ID,
	}
}
