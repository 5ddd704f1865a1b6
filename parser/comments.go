package parser

import (
	"bytes"
	"fmt"
	"strings"

	"hike-reviews/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
)

// CommentMatcher picks reviewer-written fragments out of a reviews page.
// It is the only place that knows how the site marks up review text.
type CommentMatcher interface {
	Fragments(htmlContent []byte) ([]string, error)
}

// NewMatcher builds the matcher selected by cfg.Rule
func NewMatcher(cfg config.ExtractConfig) (CommentMatcher, error) {
	switch cfg.Rule {
	case "font-size", "":
		return NewFontSizeMatcher(cfg.FontSize), nil
	case "xpath":
		return NewXPathMatcher(cfg.XPath)
	default:
		return nil, fmt.Errorf("unknown extract rule %q", cfg.Rule)
	}
}

// ExtractComments joins every matched fragment with a single space, in document order.
// A page without matches yields an empty string.
func ExtractComments(htmlContent []byte, m CommentMatcher) (string, error) {
	fragments, err := m.Fragments(htmlContent)
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, " "), nil
}

// FontSizeMatcher selects <font> elements whose rendered markup carries a given size.
// The site renders review bodies at size 1 and headers or metadata at other sizes.
type FontSizeMatcher struct {
	needle string
}

// NewFontSizeMatcher creates a FontSizeMatcher for the given size attribute value
func NewFontSizeMatcher(size string) *FontSizeMatcher {
	return &FontSizeMatcher{
		needle: fmt.Sprintf(`font size="%s"`, size),
	}
}

// Fragments implements CommentMatcher
func (m *FontSizeMatcher) Fragments(htmlContent []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var fragments []string
	doc.Find("font").Each(func(i int, s *goquery.Selection) {
		outer, err := goquery.OuterHtml(s)
		if err != nil || !strings.Contains(outer, m.needle) {
			return
		}
		fragments = append(fragments, s.Text())
	})

	return fragments, nil
}

// XPathMatcher selects review fragments with an XPath expression.
// Useful when the site's markup changes and a CSS-free rule is easier to express.
type XPathMatcher struct {
	expr *xpath.Expr
}

// NewXPathMatcher compiles expr once up front
func NewXPathMatcher(expr string) (*XPathMatcher, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile xpath %q: %w", expr, err)
	}
	return &XPathMatcher{expr: compiled}, nil
}

// Fragments implements CommentMatcher
func (m *XPathMatcher) Fragments(htmlContent []byte) ([]string, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var fragments []string
	for _, n := range htmlquery.QuerySelectorAll(doc, m.expr) {
		fragments = append(fragments, htmlquery.InnerText(n))
	}
	return fragments, nil
}
