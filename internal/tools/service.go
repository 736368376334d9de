// Package tools implements the tool surface: nine tools brokering access
// to the shadcn/ui documentation site and source repository. Handlers
// receive validated input and share one cache instance.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/cache"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/schema"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/upstream"
)

// Service bundles the collaborators every tool handler needs
type Service struct {
	upstream *upstream.Client
	cache    *cache.Cache
	logger   *logging.Logger
}

// NewService creates the tool service. The cache is the process-wide
// instance shared with every other handler.
func NewService(up *upstream.Client, c *cache.Cache) *Service {
	return &Service{
		upstream: up,
		cache:    c,
		logger:   logging.ToolLogger,
	}
}

// RegisterAll registers every tool with the registry
func (s *Service) RegisterAll(reg *registry.Registry) error {
	componentNameSchema := schema.New(schema.Field{
		Name:        "componentName",
		Type:        schema.TypeString,
		Description: "Name of the shadcn/ui component (e.g. \"button\", \"accordion\")",
		Required:    true,
	})

	tools := []*registry.Tool{
		{
			Name:        "get_component",
			Description: "Get the source code of a shadcn/ui component",
			InputSchema: componentNameSchema,
			Handler:     s.getComponent,
		},
		{
			Name:        "get_component_demo",
			Description: "Get demo code illustrating how a shadcn/ui component should be used",
			InputSchema: componentNameSchema,
			Handler:     s.getComponentDemo,
		},
		{
			Name:        "list_shadcn_components",
			Description: "Get all available shadcn/ui components",
			Handler:     s.listComponents,
		},
		{
			Name:        "get_component_details",
			Description: "Get detailed information about a shadcn/ui component from its documentation",
			InputSchema: componentNameSchema,
			Handler:     s.getComponentDetails,
		},
		{
			Name:        "get_examples",
			Description: "Get usage examples for a shadcn/ui component",
			InputSchema: componentNameSchema,
			Handler:     s.getExamples,
		},
		{
			Name:        "get_usage",
			Description: "Get usage instructions for a shadcn/ui component",
			InputSchema: componentNameSchema,
			Handler:     s.getUsage,
		},
		{
			Name:        "search_components",
			Description: "Search for shadcn/ui components by keyword",
			InputSchema: schema.New(schema.Field{
				Name:        "query",
				Type:        schema.TypeString,
				Description: "Search query",
				Required:    true,
			}),
			Handler: s.searchComponents,
		},
		{
			Name:        "get_themes",
			Description: "Get available shadcn/ui themes",
			InputSchema: schema.New(schema.Field{
				Name:        "query",
				Type:        schema.TypeString,
				Description: "Optional theme name filter",
			}),
			Handler: s.getThemes,
		},
		{
			Name:        "get_blocks",
			Description: "Get shadcn/ui blocks, optionally filtered by query or category",
			InputSchema: schema.New(
				schema.Field{
					Name:        "query",
					Type:        schema.TypeString,
					Description: "Optional block name filter",
				},
				schema.Field{
					Name:        "category",
					Type:        schema.TypeString,
					Description: "Optional block category (e.g. \"dashboard\", \"login\")",
				},
			),
			Handler: s.getBlocks,
		},
	}

	for _, t := range tools {
		if err := reg.RegisterTool(t); err != nil {
			return err
		}
	}
	return nil
}

// stringArg reads a validated string argument. Validation guarantees the
// type for declared fields; absence is only possible for optional ones.
func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// formatJSON renders a value as indented JSON text for a content block
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}
