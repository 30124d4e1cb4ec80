// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// elements whose content is dropped together with the tag
var droppedElements = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

var signatureTags = map[string][]string{
	"a":     {"href", "target"},
	"img":   {"src", "alt", "width", "height", "style"},
	"span":  {"style"},
	"div":   {"style"},
	"table": {"style", "border", "cellpadding", "cellspacing", "width"},
	"td":    {"style", "width", "colspan", "rowspan"},
	"th":    {"style", "width", "colspan", "rowspan"},
}

var signatureCssProperties = toSet(
	"color", "background-color",
	"font-size", "font-family", "font-weight", "font-style",
	"text-decoration", "text-align", "line-height",
	"padding", "margin",
	"border", "border-color", "border-width", "border-style",
	"width", "height", "max-width",
)

var signatureSchemes = toSet("http", "https", "mailto", "data")

func init() {
	for _, tag := range []string{
		"p", "br", "b", "strong", "i", "em", "u", "s",
		"tr", "thead", "tbody",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "blockquote", "hr",
	} {
		signatureTags[tag] = nil
	}
}

func toSet(values ...string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		set[v] = true
	}
	return set
}

// SanitizeMessageHtml strips scripts, event handlers and javascript: links from
// a received message body. Everything else is kept, the client renders it in a
// sandbox.
func SanitizeMessageHtml(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var sb strings.Builder
	dropping := ""

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return sb.String()
		}

		raw := string(z.Raw())
		t := z.Token()

		if len(dropping) > 0 {
			if tt == html.EndTagToken && t.Data == dropping {
				dropping = ""
			}
			continue
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			if t.Data == "script" {
				if tt == html.StartTagToken {
					dropping = t.Data
				}
				continue
			}
			t.Attr = filterAttrs(t.Attr, func(a html.Attribute) (html.Attribute, bool) {
				if strings.HasPrefix(a.Key, "on") {
					return a, false
				}
				if (a.Key == "href" || a.Key == "src") && isJavascriptUrl(a.Val) {
					a.Val = "#"
				}
				return a, true
			})
			sb.WriteString(t.String())
		case html.EndTagToken:
			if t.Data == "script" {
				continue
			}
			sb.WriteString(t.String())
		default:
			sb.WriteString(raw)
		}
	}
}

// SanitizeSignatureHtml keeps a small allow-list of formatting tags and
// attributes. Unknown tags are unwrapped, their text stays.
func SanitizeSignatureHtml(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var sb strings.Builder
	dropping := ""

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return strings.TrimSpace(sb.String())
		}

		t := z.Token()

		if len(dropping) > 0 {
			if tt == html.EndTagToken && t.Data == dropping {
				dropping = ""
			}
			continue
		}

		switch tt {
		case html.TextToken:
			sb.WriteString(html.EscapeString(t.Data))
		case html.StartTagToken, html.SelfClosingTagToken:
			if droppedElements[t.Data] || t.Data == "style" {
				if tt == html.StartTagToken {
					dropping = t.Data
				}
				continue
			}
			allowed, ok := signatureTags[t.Data]
			if !ok {
				continue
			}
			t.Attr = filterAttrs(t.Attr, func(a html.Attribute) (html.Attribute, bool) {
				return signatureAttr(allowed, a)
			})
			sb.WriteString(t.String())
		case html.EndTagToken:
			if _, ok := signatureTags[t.Data]; ok {
				sb.WriteString(t.String())
			}
		}
	}
}

func signatureAttr(allowed []string, a html.Attribute) (html.Attribute, bool) {
	key := strings.ToLower(a.Key)
	found := false
	for _, name := range allowed {
		if name == key {
			found = true
			break
		}
	}
	if !found {
		return a, false
	}

	switch key {
	case "href", "src":
		return a, allowedUrl(a.Val)
	case "target":
		return a, a.Val == "_blank"
	case "style":
		a.Val = filterStyle(a.Val)
		return a, len(a.Val) > 0
	}

	return a, true
}

func filterStyle(style string) string {
	kept := []string{}
	for _, declaration := range strings.Split(style, ";") {
		parts := strings.SplitN(declaration, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		lower := strings.ToLower(value)
		if !signatureCssProperties[property] || len(value) == 0 ||
			strings.Contains(lower, "url(") || strings.Contains(lower, "expression(") {
			continue
		}
		kept = append(kept, property+": "+value)
	}
	return strings.Join(kept, "; ")
}

func allowedUrl(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	if len(u.Scheme) == 0 {
		return true
	}
	return signatureSchemes[strings.ToLower(u.Scheme)]
}

func isJavascriptUrl(value string) bool {
	compact := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, value)
	return strings.HasPrefix(strings.ToLower(compact), "javascript:")
}

func filterAttrs(attrs []html.Attribute, keep func(html.Attribute) (html.Attribute, bool)) []html.Attribute {
	filtered := []html.Attribute{}
	for _, a := range attrs {
		if a, ok := keep(a); ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
