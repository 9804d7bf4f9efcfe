package transport

import (
	"math/rand/v2"
	"net/http"
	"strings"
)

// profile pins a User-Agent to matching client-hint headers so the outgoing
// fingerprint stays coherent.
type profile struct {
	userAgent string
	secChUA   string
	platform  string
}

var profiles = []profile{
	{
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
		secChUA:   `"Chromium";v="140", "Google Chrome";v="140", "Not=A?Brand";v="24"`,
		platform:  `"Windows"`,
	},
	{
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36",
		secChUA:   `"Chromium";v="139", "Google Chrome";v="139", "Not=A?Brand";v="24"`,
		platform:  `"macOS"`,
	},
	{
		userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		secChUA:   `"Firefox";v="128"`,
		platform:  `"Linux"`,
	},
}

// BaseHeaders builds the stable header set applied to every request. The
// parliament API serves its own frontend's XHR traffic, so the set mirrors
// that: JSON accept, same-site CORS markers and a coherent browser
// fingerprint. A non-empty userAgent pins the fingerprint; otherwise one
// profile is chosen at random and reused for the life of the client.
// Accept-Encoding and Connection are left to net/http, which negotiates
// gzip and keep-alive itself.
func BaseHeaders(userAgent string) http.Header {
	p := profiles[rand.IntN(len(profiles))]
	if userAgent != "" {
		p = matchProfile(userAgent)
	}

	h := http.Header{}
	h.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	h.Set("Accept-Language", "en-US,en;q=0.8")
	h.Set("Content-Type", "application/json")
	h.Set("Origin", "https://www.parliament.nsw.gov.au")
	h.Set("Priority", "u=1, i")
	h.Set("Referer", "https://www.parliament.nsw.gov.au/")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-site")
	h.Set("Sec-GPC", "1")
	h.Set("User-Agent", p.userAgent)
	h.Set("Sec-Ch-Ua", p.secChUA)
	h.Set("Sec-Ch-Ua-Platform", p.platform)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	return h
}

// matchProfile derives client hints for a pinned User-Agent, preferring an
// exact profile match.
func matchProfile(userAgent string) profile {
	for _, p := range profiles {
		if p.userAgent == userAgent {
			return p
		}
	}

	p := profile{userAgent: userAgent}
	if strings.Contains(userAgent, "Firefox") {
		p.secChUA = `"Firefox";v="128"`
	} else {
		p.secChUA = `"Chromium";v="140", "Google Chrome";v="140", "Not=A?Brand";v="24"`
	}
	switch {
	case strings.Contains(userAgent, "Windows"):
		p.platform = `"Windows"`
	case strings.Contains(userAgent, "Mac"):
		p.platform = `"macOS"`
	default:
		p.platform = `"Linux"`
	}
	return p
}
