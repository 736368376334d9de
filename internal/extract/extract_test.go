package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonPage = `<!DOCTYPE html>
<html>
<head><meta name="description" content="Displays a button or a component that looks like a button."></head>
<body>
<main>
<h1>Button</h1>
<p>Displays a button or a component that looks like a button.</p>
<h2 id="installation">Installation</h2>
<pre><code>npx shadcn@latest add button</code></pre>
<h2 id="usage">Usage</h2>
<p>Import the component and render it.</p>
<pre><code>import { Button } from "@/components/ui/button"</code></pre>
<h2 id="examples">Examples</h2>
<h3>Primary</h3>
<pre><code>&lt;Button&gt;Click me&lt;/Button&gt;</code></pre>
</main>
</body>
</html>`

const componentsIndex = `<html><body>
<a href="/docs/components/accordion">Accordion</a>
<a href="/docs/components/button">Button</a>
<a href="/docs/components/button">Button again</a>
<a href="/docs/components/card/">Card</a>
<a href="/docs/installation">Installation</a>
</body></html>`

func TestComponentExtractsDescriptionAndSections(t *testing.T) {
	info, err := Component(buttonPage, "button")
	require.NoError(t, err)

	assert.Equal(t, "button", info.Name)
	assert.Equal(t, "Displays a button or a component that looks like a button.", info.Description)
	assert.Contains(t, info.Installation, "npx shadcn@latest add button")
	assert.Contains(t, info.Usage, "Import the component")
}

func TestComponentMissingOptionalSections(t *testing.T) {
	info, err := Component(`<html><body><h1>Thing</h1></body></html>`, "thing")
	require.NoError(t, err)

	assert.Equal(t, "thing", info.Name)
	assert.Equal(t, "", info.Description)
	assert.Empty(t, info.Usage)
	assert.Empty(t, info.Installation)
}

func TestComponentDescriptionFallsBackToMeta(t *testing.T) {
	page := `<html><head><meta name="description" content="From meta."></head>` +
		`<body><h1>Thing</h1><div>no lead paragraph</div></body></html>`
	info, err := Component(page, "thing")
	require.NoError(t, err)
	assert.Equal(t, "From meta.", info.Description)
}

func TestUsage(t *testing.T) {
	usage, err := Usage(buttonPage)
	require.NoError(t, err)
	assert.Contains(t, usage, "Import the component and render it.")
	assert.Contains(t, usage, `import { Button } from "@/components/ui/button"`)
}

func TestUsageAbsent(t *testing.T) {
	usage, err := Usage(`<html><body><h1>Thing</h1></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "", usage)
}

func TestExamplesPairCodeWithHeadings(t *testing.T) {
	examples, err := Examples(buttonPage, "button")
	require.NoError(t, err)
	require.Len(t, examples, 3)

	assert.Equal(t, "Installation", examples[0].Name)
	assert.Equal(t, "Usage", examples[1].Name)
	assert.Equal(t, "Primary", examples[2].Name)
	assert.Contains(t, examples[2].Code, "<Button>Click me</Button>")
}

func TestComponentLinksDeduplicatesAndSkipsNested(t *testing.T) {
	names, err := ComponentLinks(componentsIndex)
	require.NoError(t, err)
	assert.Equal(t, []string{"accordion", "button", "card"}, names)
}

func TestEmptyPayloadIsParseError(t *testing.T) {
	_, err := Component("", "button")
	assert.Error(t, err)

	_, err = Usage("   ")
	assert.Error(t, err)

	_, err = ComponentLinks("")
	assert.Error(t, err)
}
