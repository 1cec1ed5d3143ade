package web

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	noticePolicyOnce sync.Once
	noticePolicy     *bluemonday.Policy
)

// SanitizeNotice strips operator-provided notice markup down to inline
// formatting and links.
func SanitizeNotice(markup string) string {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return ""
	}
	noticePolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "span", "small")
		p.AllowAttrs("href").OnElements("a")
		p.AllowStandardURLs()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		noticePolicy = p
	})
	return strings.TrimSpace(noticePolicy.Sanitize(markup))
}
