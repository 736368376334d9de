// Package resources implements the static resource and resource-template
// registrations: the component catalog, per-package-manager install
// scripts, and per-framework installation guides.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/registry"
)

// componentCatalog is the baked-in set of shadcn/ui components exposed by
// the resource:get_components resource.
var componentCatalog = []string{
	"accordion", "alert", "alert-dialog", "aspect-ratio", "avatar",
	"badge", "breadcrumb", "button", "calendar", "card", "carousel",
	"chart", "checkbox", "collapsible", "combobox", "command",
	"context-menu", "data-table", "date-picker", "dialog", "drawer",
	"dropdown-menu", "form", "hover-card", "input", "input-otp", "label",
	"menubar", "navigation-menu", "pagination", "popover", "progress",
	"radio-group", "resizable", "scroll-area", "select", "separator",
	"sheet", "sidebar", "skeleton", "slider", "sonner", "switch", "table",
	"tabs", "textarea", "toast", "toggle", "toggle-group", "tooltip",
}

// installCommands maps a package-manager name to its one-line install
// command form. Unrecognized managers fall back to the npm form.
var installCommands = map[string]string{
	"npm":  "npx shadcn@latest add %s",
	"pnpm": "pnpm dlx shadcn@latest add %s",
	"yarn": "yarn dlx shadcn@latest add %s",
	"bun":  "bunx --bun shadcn@latest add %s",
}

// RegisterAll registers the static resources and resource templates
func RegisterAll(reg *registry.Registry) error {
	logger := logging.ResourceLogger
	logger.Info("Registering resources and templates...")

	if err := reg.RegisterResource(&registry.Resource{
		URI:         "resource:get_components",
		Name:        "Available Components",
		Description: "List of all available shadcn/ui components",
		MIMEType:    "application/json",
		Handler:     componentsHandler,
	}); err != nil {
		return err
	}

	if err := reg.RegisterTemplate(&registry.ResourceTemplate{
		URITemplate: "resource-template:get_install_script_for_component?packageManager={packageManager}&component={component}",
		Name:        "Component Install Script",
		Description: "Install script for a specific shadcn/ui component and package manager",
		MIMEType:    "text/plain",
		Handler:     installScriptHandler,
	}); err != nil {
		return err
	}

	if err := reg.RegisterTemplate(&registry.ResourceTemplate{
		URITemplate: "resource-template:get_installation_guide?framework={framework}&packageManager={packageManager}",
		Name:        "Installation Guide",
		Description: "shadcn/ui installation guide for a specific framework and package manager",
		MIMEType:    "text/plain",
		Handler:     installationGuideHandler,
	}); err != nil {
		return err
	}

	logger.Info("All resources registered successfully")
	return nil
}

// componentsHandler serves the baked component catalog as JSON
func componentsHandler(_ context.Context) (*types.ContentResult, error) {
	data, err := json.MarshalIndent(componentCatalog, "", "  ")
	if err != nil {
		return nil, errors.ResourceWrap(err, "get_components", "failed to marshal component list")
	}
	return types.TextResult(string(data)), nil
}

// installScriptHandler produces the one-line install invocation for a
// component. The package manager selects among four hardcoded command
// forms; an unrecognized or absent manager falls back to the npm form.
// A missing component is reported as error content because the template
// already matched on prefix.
func installScriptHandler(_ context.Context, params map[string]string) (*types.ContentResult, error) {
	component, ok := params["component"]
	if !ok || component == "" {
		return types.ErrorResult("Missing required parameter: component"), nil
	}

	form, ok := installCommands[params["packageManager"]]
	if !ok {
		form = installCommands["npm"]
	}
	return types.TextResult(fmt.Sprintf(form, component)), nil
}

// installationGuideHandler produces a multi-line setup guide selected from
// a fixed per-framework table, with a default entry for unrecognized
// frameworks.
func installationGuideHandler(_ context.Context, params map[string]string) (*types.ContentResult, error) {
	pm := params["packageManager"]
	if _, ok := installCommands[pm]; !ok {
		pm = "npm"
	}

	framework := params["framework"]
	guide, ok := installationGuides[framework]
	if !ok {
		guide = installationGuides["default"]
	}

	return types.TextResult(fmt.Sprintf(guide, pm)), nil
}

// installationGuides maps a framework name to its setup guide. Each guide
// takes the resolved package-manager name as its single format argument.
var installationGuides = map[string]string{
	"next": `# Install shadcn/ui for Next.js

1. Create a project: %[1]s create next-app@latest my-app
2. Run the init command: cd my-app && npx shadcn@latest init
3. Answer the prompts to configure components.json
4. Add components: npx shadcn@latest add button

Components are written to the components/ui directory.`,
	"vite": `# Install shadcn/ui for Vite

1. Create a project: %[1]s create vite@latest my-app -- --template react-ts
2. Install Tailwind CSS and configure tsconfig path aliases
3. Run the init command: cd my-app && npx shadcn@latest init
4. Add components: npx shadcn@latest add button

Components are written to the directory configured in components.json.`,
	"remix": `# Install shadcn/ui for Remix

1. Create a project: %[1]s create remix@latest my-app
2. Install Tailwind CSS
3. Run the init command: cd my-app && npx shadcn@latest init
4. Add components: npx shadcn@latest add button

Remember to add the tailwind directives to your app/tailwind.css.`,
	"astro": `# Install shadcn/ui for Astro

1. Create a project: %[1]s create astro@latest my-app -- --template with-tailwindcss
2. Add React: npx astro add react
3. Run the init command: cd my-app && npx shadcn@latest init
4. Add components: npx shadcn@latest add button

Use client directives when embedding interactive components.`,
	"laravel": `# Install shadcn/ui for Laravel

1. Create a project with Inertia and React: laravel new my-app --react
2. Install the frontend dependencies: %[1]s install
3. Run the init command: cd my-app && npx shadcn@latest init
4. Add components: npx shadcn@latest add button

Components are written to resources/js/components/ui.`,
	"gatsby": `# Install shadcn/ui for Gatsby

1. Create a project: %[1]s init gatsby
2. Install Tailwind CSS and configure gatsby-config
3. Run the init command: npx shadcn@latest init
4. Add components: npx shadcn@latest add button`,
	"default": `# Install shadcn/ui (manual setup)

1. Install the dependencies with %[1]s: tailwindcss, class-variance-authority, clsx, tailwind-merge
2. Configure tsconfig path aliases for "@/*"
3. Run the init command: npx shadcn@latest init
4. Add components: npx shadcn@latest add button

See https://ui.shadcn.com/docs/installation/manual for the full steps.`,
}
