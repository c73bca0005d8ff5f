package scrape

import (
	"pitchdeck-scraper/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverLinks returns the href of every anchor matching selector, verbatim
// and in document order. One anchor without href fails the whole call.
func DiscoverLinks(doc *goquery.Document, selector string) ([]string, error) {
	return util.AllAttr(doc.Selection, selector, "href")
}
