package parser

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindReviewListing scans every anchor on a hike page and returns the absolute
// URL of its "all reviews" page. An anchor qualifies when its rendered markup
// contains marker. The site uses root-relative hrefs, so origin is prefixed.
// When several anchors qualify the last one wins.
func FindReviewListing(htmlContent []byte, origin, marker string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var (
		link  string
		found bool
	)
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		outer, err := goquery.OuterHtml(s)
		if err != nil || !strings.Contains(outer, marker) {
			return
		}

		href, ok := s.Attr("href")
		if !ok {
			log.Printf("Warning: Skipping %s anchor without href\n", marker)
			return
		}
		link = origin + href
		found = true
	})

	return link, found, nil
}
