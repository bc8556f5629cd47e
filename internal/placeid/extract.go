// Package placeid pulls the numeric Naver place identifier out of a pasted URL.
package placeid

import (
	"regexp"
	"strings"
)

// MinDigits is the shortest digit run accepted as a place identifier.
const MinDigits = 7

// Matchers are tried in order; the first one that matches wins.
var patterns = []*regexp.Regexp{
	// https://pcmap.place.naver.com/restaurant/1243837618/home
	regexp.MustCompile(`place\.naver\.com/\w+/(\d{7,})`),
	// https://map.naver.com/p/entry/place/1243837618
	regexp.MustCompile(`map\.naver\.com/.*place/(\d{7,})`),
	// anything else on naver.com with a long numeric path segment
	regexp.MustCompile(`naver\.com/.*/(\d{7,})`),
}

// Extract returns the place identifier embedded in raw, or false when raw
// does not look like a supported place URL. It never fails on malformed input.
func Extract(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}
