// Package registry holds the static descriptor tables for tools, resources,
// resource templates, and prompts, and answers pure resolution queries from
// a requested identifier to a handler. Resolution performs no I/O and
// cannot fail; it only returns absence.
package registry

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/schema"
)

// ToolHandler maps validated input to a content result or fails with a
// typed error. Handlers are stateless with respect to the registry.
type ToolHandler func(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error)

// Tool is a tool descriptor with its schema and handler attached at
// registration time. InputSchema may be nil for tools without recognized
// fields.
type Tool struct {
	Name        string
	Description string
	InputSchema *schema.Schema
	Handler     ToolHandler
}

// ResourceHandler produces the content of a resolved resource
type ResourceHandler func(ctx context.Context) (*types.ContentResult, error)

// Resource is a static resource descriptor keyed by its exact URI
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Handler     ResourceHandler
}

// TemplateHandler produces the content of a resolved resource template. It
// receives the parameters extracted from the concrete URI; a missing
// parameter must be reported as error content, not as a handler failure.
type TemplateHandler func(ctx context.Context, params map[string]string) (*types.ContentResult, error)

// ResourceTemplate is a resource template descriptor. The URI template
// holds a fixed prefix and querystring-style {param} placeholders.
type ResourceTemplate struct {
	URITemplate string
	Name        string
	Description string
	MIMEType    string
	Handler     TemplateHandler
}

// PromptHandler produces the messages of a resolved prompt
type PromptHandler func(ctx context.Context, args map[string]string) (*types.GetPromptResult, error)

// Prompt is a prompt descriptor keyed by its exact name
type Prompt struct {
	Name        string
	Description string
	Arguments   []types.PromptArgument
	Handler     PromptHandler
}

// compiledTemplate is a template pattern compiled once at registration:
// the fixed prefix plus the query key to parameter name bindings in
// declaration order.
type compiledTemplate struct {
	template *ResourceTemplate
	prefix   string
	bindings []binding
}

type binding struct {
	key   string // query key in the concrete URI
	param string // placeholder name handed to the handler
}

// Registry owns the mapping from identifiers to handlers. It is populated
// once at process start and never mutated afterwards.
type Registry struct {
	tools         []*Tool
	toolIndex     map[string]*Tool
	resources     []*Resource
	resourceIndex map[string]*Resource
	templates     []*compiledTemplate
	prompts       []*Prompt
	promptIndex   map[string]*Prompt
	logger        *logging.Logger
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		toolIndex:     make(map[string]*Tool),
		resourceIndex: make(map[string]*Resource),
		promptIndex:   make(map[string]*Prompt),
		logger:        logging.ServerLogger,
	}
}

// RegisterTool adds a tool. Registering a duplicate name is a programming
// error and fails.
func (r *Registry) RegisterTool(t *Tool) error {
	if _, exists := r.toolIndex[t.Name]; exists {
		return fmt.Errorf("tool already registered: %s", t.Name)
	}
	r.tools = append(r.tools, t)
	r.toolIndex[t.Name] = t
	r.logger.Info("Registered tool", logging.String("name", t.Name))
	return nil
}

// RegisterResource adds a static resource
func (r *Registry) RegisterResource(res *Resource) error {
	if _, exists := r.resourceIndex[res.URI]; exists {
		return fmt.Errorf("resource already registered: %s", res.URI)
	}
	r.resources = append(r.resources, res)
	r.resourceIndex[res.URI] = res
	r.logger.Info("Registered resource", logging.String("uri", res.URI))
	return nil
}

// RegisterTemplate compiles and adds a resource template. Templates are
// tried in registration order during resolution.
func (r *Registry) RegisterTemplate(t *ResourceTemplate) error {
	compiled, err := compileTemplate(t)
	if err != nil {
		return err
	}
	r.templates = append(r.templates, compiled)
	r.logger.Info("Registered resource template", logging.String("uriTemplate", t.URITemplate))
	return nil
}

// RegisterPrompt adds a prompt
func (r *Registry) RegisterPrompt(p *Prompt) error {
	if _, exists := r.promptIndex[p.Name]; exists {
		return fmt.Errorf("prompt already registered: %s", p.Name)
	}
	r.prompts = append(r.prompts, p)
	r.promptIndex[p.Name] = p
	r.logger.Info("Registered prompt", logging.String("name", p.Name))
	return nil
}

// ResolveTool returns the tool registered under name, or absent
func (r *Registry) ResolveTool(name string) (*Tool, bool) {
	t, ok := r.toolIndex[name]
	return t, ok
}

// ResolvePrompt returns the prompt registered under name, or absent
func (r *Registry) ResolvePrompt(name string) (*Prompt, bool) {
	p, ok := r.promptIndex[name]
	return p, ok
}

// ResolveResource maps a concrete URI to a bound handler and the matched
// descriptor's MIME type. Static resources are matched before any template
// is attempted; on miss, templates are tried in registration order and the
// first prefix match wins, with the extracted parameters captured in the
// returned closure.
func (r *Registry) ResolveResource(uri string) (ResourceHandler, string, bool) {
	if res, ok := r.resourceIndex[uri]; ok {
		return res.Handler, res.MIMEType, true
	}

	for _, ct := range r.templates {
		params, ok := ct.match(uri)
		if !ok {
			continue
		}
		handler := ct.template.Handler
		return func(ctx context.Context) (*types.ContentResult, error) {
			return handler(ctx, params)
		}, ct.template.MIMEType, true
	}

	return nil, "", false
}

// Tools returns the wire descriptors of all registered tools in
// registration order.
func (r *Registry) Tools() []types.Tool {
	out := make([]types.Tool, len(r.tools))
	for i, t := range r.tools {
		var inputSchema interface{}
		if t.InputSchema != nil {
			inputSchema = t.InputSchema
		} else {
			inputSchema = map[string]interface{}{"type": "object"}
		}
		out[i] = types.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: inputSchema,
		}
	}
	return out
}

// Resources returns the wire descriptors of all static resources
func (r *Registry) Resources() []types.Resource {
	out := make([]types.Resource, len(r.resources))
	for i, res := range r.resources {
		out[i] = types.Resource{
			URI:         res.URI,
			Name:        res.Name,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		}
	}
	return out
}

// ResourceTemplates returns the wire descriptors of all templates
func (r *Registry) ResourceTemplates() []types.ResourceTemplate {
	out := make([]types.ResourceTemplate, len(r.templates))
	for i, ct := range r.templates {
		out[i] = types.ResourceTemplate{
			URITemplate: ct.template.URITemplate,
			Name:        ct.template.Name,
			Description: ct.template.Description,
			MIMEType:    ct.template.MIMEType,
		}
	}
	return out
}

// Prompts returns the wire descriptors of all prompts
func (r *Registry) Prompts() []types.Prompt {
	out := make([]types.Prompt, len(r.prompts))
	for i, p := range r.prompts {
		out[i] = types.Prompt{
			Name:        p.Name,
			Description: p.Description,
			Arguments:   p.Arguments,
		}
	}
	return out
}

// compileTemplate splits the pattern into its fixed prefix and its
// query-parameter placeholder bindings.
func compileTemplate(t *ResourceTemplate) (*compiledTemplate, error) {
	prefix, query, hasQuery := strings.Cut(t.URITemplate, "?")
	if prefix == "" {
		return nil, fmt.Errorf("template has no fixed prefix: %s", t.URITemplate)
	}

	ct := &compiledTemplate{template: t, prefix: prefix}
	if !hasQuery {
		return ct, nil
	}

	for _, pair := range strings.Split(query, "&") {
		key, placeholder, ok := strings.Cut(pair, "=")
		if !ok || !strings.HasPrefix(placeholder, "{") || !strings.HasSuffix(placeholder, "}") {
			return nil, fmt.Errorf("malformed template parameter %q in %s", pair, t.URITemplate)
		}
		param := strings.TrimSuffix(strings.TrimPrefix(placeholder, "{"), "}")
		if param == "" {
			return nil, fmt.Errorf("empty placeholder in %s", t.URITemplate)
		}
		ct.bindings = append(ct.bindings, binding{key: key, param: param})
	}

	return ct, nil
}

// match checks a concrete URI against the compiled pattern. Matching
// succeeds on prefix equality alone; declared parameters absent from the
// URI are simply left out of the params map, and the bound handler is
// responsible for reporting them as error content.
func (ct *compiledTemplate) match(uri string) (map[string]string, bool) {
	prefix, query, _ := strings.Cut(uri, "?")
	if prefix != ct.prefix {
		return nil, false
	}

	params := make(map[string]string, len(ct.bindings))
	values, err := url.ParseQuery(query)
	if err != nil {
		// Prefix matched; treat an unparseable query as carrying no values
		return params, true
	}

	for _, b := range ct.bindings {
		if vs, ok := values[b.key]; ok && len(vs) > 0 {
			params[b.param] = vs[0]
		}
	}
	return params, true
}
