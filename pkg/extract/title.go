package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageTitle returns the best page-level title of doc: og:title, then the
// <title> element, then the first <h1>, then DefaultTitle.
func PageTitle(doc *goquery.Document) string {
	if doc == nil {
		return DefaultTitle
	}
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := collapse(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return DefaultTitle
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
