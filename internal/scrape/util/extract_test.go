package util

import (
	"errors"
	"strings"
	"testing"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func TestText_FirstMatchTrimmed(t *testing.T) {
	root := mustDoc(t, `<div class="name">
		  Acme <b>Corp</b>
		</div><div class="name">Second</div>`)

	got, err := Text(root, ".name")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", got)
}

func TestText_NotFound(t *testing.T) {
	root := mustDoc(t, `<p>nothing here</p>`)

	_, err := Text(root, ".company_name")
	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, ".company_name", nf.Selector)
	require.Empty(t, nf.Attr)
}

func TestText_EmptyElementIsNotAnError(t *testing.T) {
	root := mustDoc(t, `<span class="x">   </span>`)

	got, err := Text(root, ".x")
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestAttr_RawValue(t *testing.T) {
	root := mustDoc(t, `<div class="logo"><img src="  /img/a.png "></div>`)

	got, err := Attr(root, ".logo > img", "src")
	require.NoError(t, err)
	require.Equal(t, "  /img/a.png ", got)
}

func TestAttr_MissingAttribute(t *testing.T) {
	root := mustDoc(t, `<div class="logo"><img alt="x"></div>`)

	_, err := Attr(root, ".logo > img", "src")
	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "src", nf.Attr)
}

func TestAttr_NoElement(t *testing.T) {
	root := mustDoc(t, `<div class="logo"></div>`)

	_, err := Attr(root, ".logo > img", "src")
	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Empty(t, nf.Attr)
}

func TestAllText(t *testing.T) {
	root := mustDoc(t, `<ul><li><a> #fintech </a></li><li><a>#ai</a></li><li><span><a>nested</a></span></li></ul>`)

	require.Equal(t, []string{"#fintech", "#ai"}, AllText(root, "li > a"))

	none := AllText(root, "li > em")
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestAllAttr(t *testing.T) {
	root := mustDoc(t, `<table><tr><td><a href="/a">A</a></td><td><a href="/b">B</a></td></tr></table>`)

	got, err := AllAttr(root, "td > a", "href")
	require.NoError(t, err)
	require.Equal(t, []string{"/a", "/b"}, got)

	root = mustDoc(t, `<table><tr><td><a href="/a">A</a></td><td><a>B</a></td></tr></table>`)
	_, err = AllAttr(root, "td > a", "href")
	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestJoinURL(t *testing.T) {
	require.Equal(t, "http://pitchdeck.business/pitch_cards/x", JoinURL("http://pitchdeck.business", "/pitch_cards/x"))
	require.Equal(t, "http://hostpath", JoinURL("http://host", "path"))
}

func TestValidBaseURL(t *testing.T) {
	cases := map[string]bool{
		"http://pitchdeck.business":  true,
		"https://example.com:8080":   true,
		"http://pitchdeck.business/": false,
		"ftp://example.com":          false,
		"pitchdeck.business":         false,
		"":                           false,
	}
	for in, want := range cases {
		require.Equal(t, want, ValidBaseURL(in), in)
	}
}

func TestCleanTextAndTruncate(t *testing.T) {
	require.Equal(t, "a b c", CleanText(" a  b\n\tc "))
	require.Equal(t, "abc", Truncate("abc", 3))
	require.Equal(t, "ab…", Truncate("abcd", 3))
	require.Equal(t, "abcd", Truncate("abcd", 0))
}
