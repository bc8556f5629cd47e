package naverweb

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"sonnimal/internal/models"
)

const (
	defaultRating   = 3
	anonymousAuthor = "익명"
	minBodyRunes    = 6
)

var (
	nameRe        = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	categoryRe    = regexp.MustCompile(`"category"\s*:\s*"([^"]+)"`)
	reviewCountRe = regexp.MustCompile(`"visitorReviewCount"\s*:\s*(\d+)`)
	reviewScoreRe = regexp.MustCompile(`"visitorReviewScore"\s*:\s*([\d.]+)`)

	bodyRe     = regexp.MustCompile(`"body"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	ratingRe   = regexp.MustCompile(`"rating"\s*:\s*(\d)`)
	nicknameRe = regexp.MustCompile(`"nickname"\s*:\s*"([^"]+)"`)
	createdRe  = regexp.MustCompile(`"created"\s*:\s*"([^"]+)"`)

	// "가게이름 : 네이버", "가게이름 - 네이버 플레이스", "가게이름 | 네이버"
	providerSuffixRe = regexp.MustCompile(`(?i)\s*[-|:]\s*네이버.*$`)

	bodyUnescaper = strings.NewReplacer(`\n`, " ", `\"`, `"`)
)

// embeddedData is what could be recovered from the page's __NEXT_DATA__ block.
type embeddedData struct {
	place   *models.PlaceMetadata
	reviews []models.RawReview
}

// embeddedBlock returns the raw JSON text of the embedded data script, or ""
// when the page has none or it is not valid JSON.
func embeddedBlock(doc *goquery.Document) string {
	raw := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).First().Text())
	if raw == "" || !json.Valid([]byte(raw)) {
		return ""
	}
	return raw
}

// parseEmbedded pulls place fields and review arrays out of the block with
// field regexes. The arrays are zipped by index; the schema is not stable
// enough to walk structurally.
func parseEmbedded(block, created string) *embeddedData {
	if block == "" {
		return nil
	}
	out := &embeddedData{}

	if m := nameRe.FindStringSubmatch(block); m != nil {
		meta := models.PlaceMetadata{Name: m[1]}
		if c := categoryRe.FindStringSubmatch(block); c != nil {
			meta.Category = c[1]
		}
		if c := reviewCountRe.FindStringSubmatch(block); c != nil {
			meta.ReviewCount, _ = strconv.Atoi(c[1])
		}
		if c := reviewScoreRe.FindStringSubmatch(block); c != nil {
			meta.ReviewScore, _ = strconv.ParseFloat(c[1], 64)
		}
		out.place = &meta
	}

	var bodies []string
	for _, m := range bodyRe.FindAllStringSubmatch(block, -1) {
		if utf8.RuneCountInString(m[1]) >= minBodyRunes {
			bodies = append(bodies, m[1])
		}
	}
	ratings := submatches(ratingRe, block)
	nicknames := submatches(nicknameRe, block)
	dates := submatches(createdRe, block)

	for i, body := range bodies {
		review := models.RawReview{
			ID:         strconv.Itoa(i),
			Rating:     defaultRating,
			Author:     anonymousAuthor,
			Body:       bodyUnescaper.Replace(body),
			Created:    created,
			VisitCount: 1,
		}
		if i < len(ratings) {
			if r, _ := strconv.Atoi(ratings[i]); r > 0 {
				review.Rating = r
			}
		}
		if i < len(nicknames) {
			review.Author = nicknames[i]
		}
		if i < len(dates) {
			review.Created = dates[i]
		}
		out.reviews = append(out.reviews, review)
	}

	if out.place == nil && len(out.reviews) == 0 {
		return nil
	}
	return out
}

func submatches(re *regexp.Regexp, s string) []string {
	all := re.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(all))
	for _, m := range all {
		out = append(out, m[1])
	}
	return out
}

// titleName derives a place name from og:title, then <title>.
func titleName(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if name := stripProviderSuffix(og); name != "" {
			return name
		}
	}
	return stripProviderSuffix(doc.Find("title").First().Text())
}

func stripProviderSuffix(title string) string {
	return strings.TrimSpace(providerSuffixRe.ReplaceAllString(strings.TrimSpace(title), ""))
}
