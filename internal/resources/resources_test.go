package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsHandlerReturnsCatalog(t *testing.T) {
	result, err := componentsHandler(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &names))
	assert.Contains(t, names, "button")
	assert.Contains(t, names, "accordion")
}

func TestInstallScriptCommandForms(t *testing.T) {
	tests := []struct {
		pm   string
		want string
	}{
		{"npm", "npx shadcn@latest add button"},
		{"pnpm", "pnpm dlx shadcn@latest add button"},
		{"yarn", "yarn dlx shadcn@latest add button"},
		{"bun", "bunx --bun shadcn@latest add button"},
		{"unknown", "npx shadcn@latest add button"},
		{"", "npx shadcn@latest add button"},
	}

	for _, tt := range tests {
		t.Run(tt.pm, func(t *testing.T) {
			result, err := installScriptHandler(context.Background(), map[string]string{
				"packageManager": tt.pm,
				"component":      "button",
			})
			require.NoError(t, err)
			assert.False(t, result.IsError)
			assert.Equal(t, tt.want, result.Content[0].Text)
		})
	}
}

func TestInstallScriptMissingComponentIsErrorContent(t *testing.T) {
	result, err := installScriptHandler(context.Background(), map[string]string{
		"packageManager": "pnpm",
	})
	require.NoError(t, err, "a missing parameter is content, not a failure")
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "component")
}

func TestInstallationGuideSelectsFramework(t *testing.T) {
	result, err := installationGuideHandler(context.Background(), map[string]string{
		"framework":      "next",
		"packageManager": "pnpm",
	})
	require.NoError(t, err)
	text := result.Content[0].Text
	assert.Contains(t, text, "Next.js")
	assert.Contains(t, text, "pnpm create next-app@latest")
}

func TestInstallationGuideDefaultEntry(t *testing.T) {
	result, err := installationGuideHandler(context.Background(), map[string]string{
		"framework":      "svelte",
		"packageManager": "unknown",
	})
	require.NoError(t, err)
	text := result.Content[0].Text
	assert.Contains(t, text, "manual setup")
	assert.Contains(t, text, "npm")
}
