package dumper

import (
	"regexp"
	"strings"
)

var (
	interwikiRe = regexp.MustCompile(`^\w[\w+\-.]+\?`)
	urlSchemeRe = regexp.MustCompile(`^(\w[\w+\-.]+)://`)
	emailRe     = regexp.MustCompile(`^\S+@\S+\.\w+$`)
	winPathRe   = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// LinkType classifies a link target. URLs report their scheme ("http",
// "file", ...); other values are "interwiki", "file", "mailto" or "page".
func LinkType(href string) string {
	switch {
	case interwikiRe.MatchString(href):
		return "interwiki"
	case urlSchemeRe.MatchString(href):
		return strings.ToLower(urlSchemeRe.FindStringSubmatch(href)[1])
	case strings.HasPrefix(href, "file:/"),
		strings.HasPrefix(href, "/"),
		strings.HasPrefix(href, `\`),
		strings.HasPrefix(href, "~"),
		strings.HasPrefix(href, "./"),
		strings.HasPrefix(href, "../"),
		winPathRe.MatchString(href):
		return "file"
	case strings.HasPrefix(href, "mailto:"), emailRe.MatchString(href):
		return "mailto"
	default:
		return "page"
	}
}
