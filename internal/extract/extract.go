// Package extract turns upstream payloads (scraped documentation HTML, raw
// source text) into normalized records. Extractors are pure functions: they
// never fail on missing optional data, only when the payload itself cannot
// be parsed.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
)

// ComponentInfo is the normalized record for one component's documentation
// page. Name and Description are always populated (empty string when
// unknown); optional fields are omitted when not found.
type ComponentInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url,omitempty"`
	Installation string `json:"installation,omitempty"`
	Usage        string `json:"usage,omitempty"`
}

// Example is one code example from a documentation page
type Example struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
}

// Theme is one theme entry from the themes page
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Block is one block entry from the blocks listing
type Block struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// parse wraps goquery document construction with the package's error
// contract: an empty or unreadable payload is a parse failure, anything
// else yields a document.
func parse(html string) (*goquery.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("extract", "parse", "empty payload")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(err, "extract", "parse", "failed to parse payload")
	}
	return doc, nil
}

// Component extracts the normalized component record from a documentation
// page.
func Component(html, name string) (*ComponentInfo, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	info := &ComponentInfo{Name: name}

	// Description: prefer the lead paragraph right after the page title,
	// fall back to the meta description.
	if lead := doc.Find("h1").First().NextFiltered("p"); lead.Length() > 0 {
		info.Description = strings.TrimSpace(lead.Text())
	}
	if info.Description == "" {
		if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			info.Description = strings.TrimSpace(meta)
		}
	}

	info.Installation = sectionText(doc, "installation")
	info.Usage = sectionText(doc, "usage")

	return info, nil
}

// Usage extracts the usage section of a documentation page. An empty string
// means the page has no usage section; the caller decides the fallback.
func Usage(html string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}
	return sectionText(doc, "usage"), nil
}

// Examples extracts all code examples from a documentation page. Each
// fenced code block is paired with the nearest preceding heading.
func Examples(html, name string) ([]Example, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var examples []Example
	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		code := strings.TrimSpace(pre.Text())
		if code == "" {
			return
		}

		title := name
		if h := pre.PrevAllFiltered("h2, h3").First(); h.Length() > 0 {
			title = strings.TrimSpace(h.Text())
		}

		examples = append(examples, Example{
			Name:        title,
			Description: "",
			Code:        code,
		})
	})

	return examples, nil
}

// Themes extracts the theme entries from the themes page
func Themes(html string) ([]Theme, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var themes []Theme
	doc.Find("[data-theme], button[aria-label]").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("data-theme")
		if !ok {
			name, _ = sel.Attr("aria-label")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		themes = append(themes, Theme{
			Name:        name,
			Description: strings.TrimSpace(sel.AttrOr("title", "")),
		})
	})

	return themes, nil
}

// Blocks extracts block entries from the blocks listing page
func Blocks(html string) ([]Block, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	doc.Find("[data-block], [data-name]").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("data-block")
		if !ok {
			name, _ = sel.Attr("data-name")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		blocks = append(blocks, Block{
			Name:        name,
			Description: strings.TrimSpace(sel.AttrOr("aria-label", "")),
			Category:    strings.TrimSpace(sel.AttrOr("data-category", "")),
		})
	})

	return blocks, nil
}

// ComponentLinks extracts component names from the components index page by
// collecting documentation links.
func ComponentLinks(html string) ([]string, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	doc.Find(`a[href^="/docs/components/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		name := strings.Trim(strings.TrimPrefix(href, "/docs/components/"), "/")
		if name == "" || strings.Contains(name, "/") || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})

	return names, nil
}

// sectionText collects the text and code of the section introduced by the
// heading with the given id (or matching text), up to the next heading of
// the same level.
func sectionText(doc *goquery.Document, section string) string {
	heading := doc.Find("h2#" + section).First()
	if heading.Length() == 0 {
		doc.Find("h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(h.Text()), section) {
				heading = h
				return false
			}
			return true
		})
	}
	if heading.Length() == 0 {
		return ""
	}

	var parts []string
	for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
		if goquery.NodeName(sib) == "h2" {
			break
		}
		if text := strings.TrimSpace(sib.Text()); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n")
}
