package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/cache"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/extract"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
)

// componentNames returns the component catalog, preferring the repository
// registry listing and falling back to the documentation index. The result
// is cached under one key shared by every catalog-backed tool.
func (s *Service) componentNames(ctx context.Context) ([]string, error) {
	return cache.Fetch(ctx, s.cache, "components:list", func(ctx context.Context) ([]string, error) {
		entries, err := s.upstream.RepoDirectory(ctx, "apps/www/registry/new-york/ui")
		if err == nil {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if e.Type == "file" && strings.HasSuffix(e.Name, ".tsx") {
					names = append(names, strings.TrimSuffix(e.Name, ".tsx"))
				}
			}
			if len(names) > 0 {
				sort.Strings(names)
				return names, nil
			}
		}
		s.logger.Warn("repository listing unavailable, falling back to docs index",
			logging.Error(orUnknown(err)))

		html, derr := s.upstream.DocPage(ctx, "/docs/components")
		if derr != nil {
			return nil, derr
		}
		names, derr := extract.ComponentLinks(html)
		if derr != nil {
			return nil, derr
		}
		sort.Strings(names)
		return names, nil
	})
}

func orUnknown(err error) error {
	if err == nil {
		return fmt.Errorf("empty listing")
	}
	return err
}

func (s *Service) listComponents(ctx context.Context, _ map[string]interface{}) (*types.ContentResult, error) {
	names, err := s.componentNames(ctx)
	if err != nil {
		return nil, errors.ToolWrap(err, "list_shadcn_components", "failed to list components")
	}

	text, err := formatJSON(names)
	if err != nil {
		return nil, errors.ToolWrap(err, "list_shadcn_components", "failed to format component list")
	}
	return types.TextResult(text), nil
}

func (s *Service) searchComponents(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	query := strings.ToLower(strings.TrimSpace(stringArg(args, "query")))

	names, err := s.componentNames(ctx)
	if err != nil {
		return nil, errors.ToolWrap(err, "search_components", "failed to list components")
	}

	var matches []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), query) {
			matches = append(matches, name)
		}
	}

	if len(matches) == 0 {
		return types.TextResult(fmt.Sprintf("No components found matching %q.", query)), nil
	}

	text, err := formatJSON(matches)
	if err != nil {
		return nil, errors.ToolWrap(err, "search_components", "failed to format matches")
	}
	return types.TextResult(text), nil
}

func (s *Service) getThemes(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	query := strings.ToLower(strings.TrimSpace(stringArg(args, "query")))

	themes, err := cache.Fetch(ctx, s.cache, "themes:list", func(ctx context.Context) ([]extract.Theme, error) {
		html, err := s.upstream.DocPage(ctx, "/themes")
		if err != nil {
			return nil, err
		}
		return extract.Themes(html)
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_themes", "failed to fetch themes")
	}

	if query != "" {
		var filtered []extract.Theme
		for _, t := range themes {
			if strings.Contains(strings.ToLower(t.Name), query) {
				filtered = append(filtered, t)
			}
		}
		themes = filtered
	}

	if len(themes) == 0 {
		return types.TextResult("No themes found."), nil
	}

	text, err := formatJSON(themes)
	if err != nil {
		return nil, errors.ToolWrap(err, "get_themes", "failed to format themes")
	}
	return types.TextResult(text), nil
}

func (s *Service) getBlocks(ctx context.Context, args map[string]interface{}) (*types.ContentResult, error) {
	query := strings.ToLower(strings.TrimSpace(stringArg(args, "query")))
	category := strings.ToLower(strings.TrimSpace(stringArg(args, "category")))

	blocks, err := cache.Fetch(ctx, s.cache, "blocks:list", func(ctx context.Context) ([]extract.Block, error) {
		html, err := s.upstream.DocPage(ctx, "/blocks")
		if err != nil {
			return nil, err
		}
		return extract.Blocks(html)
	})
	if err != nil {
		return nil, errors.ToolWrap(err, "get_blocks", "failed to fetch blocks")
	}

	var filtered []extract.Block
	for _, b := range blocks {
		if query != "" && !strings.Contains(strings.ToLower(b.Name), query) {
			continue
		}
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		filtered = append(filtered, b)
	}

	if len(filtered) == 0 {
		return types.TextResult("No blocks found."), nil
	}

	text, err := formatJSON(filtered)
	if err != nil {
		return nil, errors.ToolWrap(err, "get_blocks", "failed to format blocks")
	}
	return types.TextResult(text), nil
}
