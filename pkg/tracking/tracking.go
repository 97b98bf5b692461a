// Package tracking rewrites outbound email HTML so opens and clicks can
// be attributed to a delivery log record.
package tracking

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PixelGIF is a 1x1 transparent GIF. It is served for every tracking
// request, including error paths, so mail clients never render a broken
// image.
var PixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80,
	0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// OpenURL returns the tracking pixel URL for a delivery log.
func OpenURL(endpoint, logID string) string {
	return fmt.Sprintf("%s/track/open/%s", strings.TrimSuffix(endpoint, "/"), logID)
}

// ClickURL returns the redirect URL used to count a click on target.
func ClickURL(endpoint, logID, target string) string {
	return fmt.Sprintf("%s/track/click/%s?url=%s",
		strings.TrimSuffix(endpoint, "/"), logID, url.QueryEscape(target))
}

// InjectPixel appends an invisible tracking pixel referencing the log
// id to the HTML body. If the HTML cannot be parsed the pixel is
// appended to the raw content instead; injection never fails the send.
func InjectPixel(html, endpoint, logID string) string {
	pixel := fmt.Sprintf(
		`<img src="%s" alt="" width="1" height="1" style="display:none;max-height:1px;max-width:1px;" />`,
		OpenURL(endpoint, logID))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html + pixel
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return html + pixel
	}
	body.AppendHtml(pixel)

	out, err := doc.Html()
	if err != nil {
		return html + pixel
	}
	return out
}

// RewriteLinks replaces every http(s) anchor href with a tracked
// redirect through the click endpoint. Anchors with mailto:, tel: or
// fragment hrefs are left alone. Parse failures return the input
// unchanged.
func RewriteLinks(html, endpoint, logID string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
			return
		}
		sel.SetAttr("href", ClickURL(endpoint, logID, href))
	})

	out, err := doc.Html()
	if err != nil {
		return html
	}
	return out
}
