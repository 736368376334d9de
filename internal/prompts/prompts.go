// Package prompts implements the prompt surface: reusable message
// templates a client can fill in and hand to a model.
package prompts

import (
	"context"
	"fmt"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
)

// RegisterAll registers the prompts with the registry
func RegisterAll(reg *registry.Registry) error {
	logger := logging.PromptLogger
	logger.Info("Registering prompts...")

	prompts := []*registry.Prompt{
		{
			Name:        "component_usage",
			Description: "Ask how to use a specific shadcn/ui component",
			Arguments: []types.PromptArgument{
				{Name: "componentName", Description: "Name of the component", Required: true},
			},
			Handler: componentUsageHandler,
		},
		{
			Name:        "build_shadcn_page",
			Description: "Scaffold a page built from shadcn/ui components",
			Arguments: []types.PromptArgument{
				{Name: "description", Description: "What the page should do", Required: true},
			},
			Handler: buildPageHandler,
		},
	}

	for _, p := range prompts {
		if err := reg.RegisterPrompt(p); err != nil {
			return err
		}
	}

	logger.Info("All prompts registered successfully")
	return nil
}

func componentUsageHandler(_ context.Context, args map[string]string) (*types.GetPromptResult, error) {
	name := args["componentName"]
	if name == "" {
		return nil, errors.InvalidParams("prompt", "component_usage", "componentName is required")
	}

	text := fmt.Sprintf(
		"Show me how to use the shadcn/ui %q component. Include the install command, "+
			"the import statement, and a minimal working example.", name)

	return &types.GetPromptResult{
		Description: fmt.Sprintf("Usage guidance for the %s component", name),
		Messages: []types.PromptMessage{
			{Role: "user", Content: types.TextContent(text)},
		},
	}, nil
}

func buildPageHandler(_ context.Context, args map[string]string) (*types.GetPromptResult, error) {
	description := args["description"]
	if description == "" {
		return nil, errors.InvalidParams("prompt", "build_shadcn_page", "description is required")
	}

	text := fmt.Sprintf(
		"Build a React page using shadcn/ui components for the following requirement: %s\n\n"+
			"Prefer existing shadcn/ui components over custom markup, list the components "+
			"to install first, and return the complete page source.", description)

	return &types.GetPromptResult{
		Description: "Page scaffold from shadcn/ui components",
		Messages: []types.PromptMessage{
			{Role: "user", Content: types.TextContent(text)},
		},
	}, nil
}
