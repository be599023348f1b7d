// internal/app/system/preview/meta.go
package preview

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// pageMeta holds the <meta> tags and document title extracted from a page.
type pageMeta struct {
	// tags maps a meta key (property, name, or itemprop attribute) to
	// the first non-empty content seen for it.
	tags  map[string]string
	title string
}

// parseMeta tokenizes an HTML document and collects meta tags and the
// document title. It never fails: malformed markup yields whatever was
// extractable before the parser gave up.
func parseMeta(body string) pageMeta {
	pm := pageMeta{tags: make(map[string]string)}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return pm
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var key, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "property", "name", "itemprop":
						if key == "" {
							key = a.Val
						}
					case "content":
						content = a.Val
					}
				}
				if key != "" && content != "" {
					if _, seen := pm.tags[key]; !seen {
						pm.tags[key] = content
					}
				}
			case "title":
				if pm.title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					pm.title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return pm
}

// first returns the first non-empty value among the given meta keys.
func (pm pageMeta) first(keys ...string) string {
	for _, k := range keys {
		if v := pm.tags[k]; v != "" {
			return v
		}
	}
	return ""
}

// articleTitle resolves the page title with og/twitter priority and the
// document <title> as last resort. Empty when nothing usable was found.
func (pm pageMeta) articleTitle() string {
	if t := pm.first("og:title", "twitter:title"); t != "" {
		return t
	}
	return pm.title
}

// articleDescription resolves the description with og/twitter/generic
// priority. Empty when nothing usable was found.
func (pm pageMeta) articleDescription() string {
	return pm.first("og:description", "twitter:description", "description")
}

// articleImage resolves the representative image. Relative URLs are
// resolved against the source URL's origin; an image that cannot be
// resolved is dropped rather than returned broken.
func (pm pageMeta) articleImage(sourceURL string) string {
	img := pm.first("og:image", "twitter:image")
	if img == "" || strings.HasPrefix(img, "http") {
		return img
	}

	src, err := url.Parse(sourceURL)
	if err != nil || src.Scheme == "" || src.Host == "" {
		return ""
	}
	rel, err := url.Parse(img)
	if err != nil {
		return ""
	}
	return src.ResolveReference(rel).String()
}

// empty reports whether the page yielded no usable title, description,
// or image at all. A page this bare is previewed as a plain link.
func (pm pageMeta) empty(sourceURL string) bool {
	return pm.articleTitle() == "" &&
		pm.articleDescription() == "" &&
		pm.articleImage(sourceURL) == ""
}
