package kb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ArticleLead fetches a Wikipedia article page and extracts the plain
// text of its lead section (everything before the first h2). It is the
// fallback path when the extracts API returns nothing usable.
func (c *Client) ArticleLead(ctx context.Context, title string) (string, error) {
	articleURL := c.wikipediaBase + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	body, err := c.getBody(ctx, articleURL)
	if err != nil {
		return "", fmt.Errorf("article %q: %w", title, err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("%w: parse article %q: %v", ErrMalformedResponse, title, err)
	}

	lead := leadParagraphs(doc)
	if lead == "" {
		return "", fmt.Errorf("article %q has no lead text: %w", title, ErrNotFound)
	}
	return lead, nil
}

// leadParagraphs collects paragraph text from the article content area,
// stopping at the first h2 and skipping infoboxes and navigation tables
func leadParagraphs(doc *html.Node) string {
	content := findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" &&
			(hasClass(n, "mw-parser-output") || getAttr(n, "id") == "mw-content-text")
	})
	if content == nil {
		content = doc
	}

	var paragraphs []string
	inLead := true

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if !inLead {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "h2":
				inLead = false
				return
			case n.Data == "table" && (hasClass(n, "infobox") || hasClass(n, "navbox")):
				return
			case n.Data == "p":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(content)

	return strings.Join(paragraphs, " ")
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "style" || n.Data == "script" || n.Data == "sup") {
		return ""
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
