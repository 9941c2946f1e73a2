// Package export turns compiled documents into forms that can be passed around.
package export

import (
	"net/url"
	"strings"
)

// DataURLPrefix introduces an inline HTML document.
const DataURLPrefix = "data:text/html;charset=utf-8,"

// componentEscape turns query escaping into the browser's component escaping: spaces
// are %20 because '+' has no special meaning in data URLs, and !'()* stay literal.
var componentEscape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// DataURL encodes a document as a data URL that a browser opens directly,
// so a machine can be shared without hosting it anywhere.
func DataURL(html string) string {
	return DataURLPrefix + componentEscape.Replace(url.QueryEscape(html))
}

// Decode reverses DataURL. It reports false when s is not an HTML data URL.
func Decode(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, DataURLPrefix)
	if !ok {
		return "", false
	}
	html, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return html, true
}
