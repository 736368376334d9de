package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/cache"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/extract"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
)

// usageFallback is returned when a documentation page carries no usage
// section for the requested component.
const usageFallback = "No usage instructions available for this component."

// componentSourcePaths returns the repository paths that may hold a
// component's source, in probe order: the new-york registry first, then
// the default registry, then the v4 tree.
func componentSourcePaths(name string) []string {
	return []string{
		fmt.Sprintf("apps/www/registry/new-york/ui/%s.tsx", name),
		fmt.Sprintf("apps/www/registry/default/ui/%s.tsx", name),
		fmt.Sprintf("apps/v4/registry/new-york-v4/ui/%s.tsx", name),
	}
}

// componentDemoPaths returns the repository paths that may hold a
// component's demo, in probe order.
func componentDemoPaths(name string) []string {
	return []string{
		fmt.Sprintf("apps/www/registry/new-york/example/%s-demo.tsx", name),
		fmt.Sprintf("apps/www/registry/default/example/%s-demo.tsx", name),
		fmt.Sprintf("apps/v4/registry/new-york-v4/examples/%s-demo.tsx", name),
	}
}

// fetchFirst tries each candidate repository path in order and returns the
// first file that fetches successfully. Intermediate failures are
// swallowed; only the last failure surfaces once every path is exhausted.
func (s *Service) fetchFirst(ctx context.Context, paths []string) (string, error) {
	var lastErr error
	for _, path := range paths {
		content, err := s.upstream.SourceFile(ctx, path)
		if err == nil {
			return content, nil
		}
		s.logger.Debug("candidate path failed",
			logging.String("path", path),
			logging.Error(err))
		lastErr = err
	}
	return "", lastErr
}

func (s *Service) getComponent(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	name := normalize(stringArg(args, "componentName"))

	source, err := cache.Fetch(ctx, s.cache, "component:source:"+name, func(ctx context.Context) (string, error) {
		return s.fetchFirst(ctx, componentSourcePaths(name))
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_component", fmt.Sprintf("failed to fetch source for %q", name))
	}

	return types.TextResult(source), nil
}

func (s *Service) getComponentDemo(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	name := normalize(stringArg(args, "componentName"))

	demo, err := cache.Fetch(ctx, s.cache, "component:demo:"+name, func(ctx context.Context) (string, error) {
		return s.fetchFirst(ctx, componentDemoPaths(name))
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_component_demo", fmt.Sprintf("failed to fetch demo for %q", name))
	}

	return types.TextResult(demo), nil
}

func (s *Service) getComponentDetails(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	name := normalize(stringArg(args, "componentName"))

	info, err := cache.Fetch(ctx, s.cache, "component:details:"+name, func(ctx context.Context) (*extract.ComponentInfo, error) {
		html, err := s.upstream.DocPage(ctx, "/docs/components/"+name)
		if err != nil {
			return nil, err
		}
		return extract.Component(html, name)
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_component_details", fmt.Sprintf("failed to fetch details for %q", name))
	}

	text, err := formatJSON(info)
	if err != nil {
		return nil, errors.ToolWrap(err, "get_component_details", "failed to format details")
	}
	return types.TextResult(text), nil
}

func (s *Service) getExamples(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	name := normalize(stringArg(args, "componentName"))

	examples, err := cache.Fetch(ctx, s.cache, "component:examples:"+name, func(ctx context.Context) ([]extract.Example, error) {
		html, err := s.upstream.DocPage(ctx, "/docs/components/"+name)
		if err != nil {
			return nil, err
		}
		return extract.Examples(html, name)
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_examples", fmt.Sprintf("failed to fetch examples for %q", name))
	}

	if len(examples) == 0 {
		return types.TextResult(fmt.Sprintf("No examples available for component %q.", name)), nil
	}

	text, err := formatJSON(examples)
	if err != nil {
		return nil, errors.ToolWrap(err, "get_examples", "failed to format examples")
	}
	return types.TextResult(text), nil
}

func (s *Service) getUsage(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	name := normalize(stringArg(args, "componentName"))

	usage, err := cache.Fetch(ctx, s.cache, "component:usage:"+name, func(ctx context.Context) (string, error) {
		html, err := s.upstream.DocPage(ctx, "/docs/components/"+name)
		if err != nil {
			return "", err
		}
		return extract.Usage(html)
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_usage", fmt.Sprintf("failed to fetch usage for %q", name))
	}

	if usage == "" {
		usage = usageFallback
	}
	return types.TextResult(usage), nil
}

// normalize maps a user-supplied component name onto the lowercase
// hyphenated form used by the registry and the docs site.
func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
