package util

import (
	"strings"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/PuerkitoBio/goquery"
)

// Text returns the trimmed text of the first element under root matching
// selector. Further matches are ignored.
func Text(root *goquery.Selection, selector string) (string, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return "", &types.NotFoundError{Selector: selector}
	}
	return strings.TrimSpace(sel.Text()), nil
}

// Attr returns the raw value of attr on the first element matching selector.
// The value is not trimmed.
func Attr(root *goquery.Selection, selector, attr string) (string, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return "", &types.NotFoundError{Selector: selector}
	}
	v, ok := sel.Attr(attr)
	if !ok {
		return "", &types.NotFoundError{Selector: selector, Attr: attr}
	}
	return v, nil
}

// AllText returns the trimmed text of every match in document order. No
// match yields an empty, non-nil slice.
func AllText(root *goquery.Selection, selector string) []string {
	sel := root.Find(selector)
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

// AllAttr returns attr of every match in document order. A match without the
// attribute fails the whole call.
func AllAttr(root *goquery.Selection, selector, attr string) ([]string, error) {
	sel := root.Find(selector)
	out := make([]string, 0, sel.Length())
	var err error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok {
			err = &types.NotFoundError{Selector: selector, Attr: attr}
			return false
		}
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
