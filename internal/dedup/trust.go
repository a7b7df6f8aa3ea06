package dedup

import (
	"net/url"
	"strings"
)

// trustedDomains are outlets whose reporting we weight at full trust.
var trustedDomains = []string{
	"coindesk.com",
	"cointelegraph.com",
	"decrypt.co",
	"theblock.co",
	"bloomberg.com",
	"reuters.com",
	"cnbc.com",
	"businessinsider.com",
	"techcrunch.com",
}

// ScoreTrust rates an article source: 1.0 for trusted outlets, 0.8 for
// everything else, 0.5 when neither source nor url is known.
func ScoreTrust(source, articleURL string) float64 {
	if source == "" && articleURL == "" {
		return 0.5
	}

	domain := extractDomain(articleURL)
	if domain == "" {
		domain = strings.ToLower(source)
	}

	for _, trusted := range trustedDomains {
		if strings.Contains(domain, trusted) {
			return 1.0
		}
	}
	return 0.8
}

func extractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if strings.HasPrefix(rawURL, "http") {
		if u, err := url.Parse(rawURL); err == nil {
			return strings.ToLower(u.Hostname())
		}
	}
	return strings.ToLower(rawURL)
}
