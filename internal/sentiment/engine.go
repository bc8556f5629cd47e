// Package sentiment turns raw visitor reviews into the owner report: ranked
// complaints and praises, category scores, action items and draft replies.
// Everything here is pure except the review-change filler.
package sentiment

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"sonnimal/internal/models"
)

const (
	Period = "최근 30일"

	maxRanked      = 3
	maxReplies     = 5
	lowRatingLimit = 2

	urgentBelow    = 3.5
	attentionBelow = 4.0
	// Real reviews need this many mentions before an attention warning.
	attentionMentions = 3

	noMentionRatio = 0.75
)

var kst = time.FixedZone("KST", 9*60*60)

// Count is a bucket label and how many reviews matched it.
type Count struct {
	Label string
	Count int
}

type Engine struct {
	reviewChange func() int
}

type Option func(*Engine)

// WithReviewChange replaces the random review-change filler.
func WithReviewChange(fn func() int) Option {
	return func(e *Engine) { e.reviewChange = fn }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		reviewChange: func() int { return rand.IntN(20) + 5 },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze builds a report from real reviews. meta may be nil.
func (e *Engine) Analyze(placeID string, reviews []models.RawReview, meta *models.PlaceMetadata) *models.AnalysisResult {
	complaints := CountMatches(reviews, ComplaintBuckets)
	praises := CountMatches(reviews, PraiseBuckets)

	result := &models.AnalysisResult{
		Restaurant: models.Restaurant{
			Name:    DisplayName(placeID, meta),
			PlaceID: placeID,
			Period:  Period,
		},
		Stats: models.Stats{
			TotalReviews:  len(reviews),
			ReviewChange:  e.reviewChange(),
			AverageRating: averageRating(reviews),
			NeedResponse:  NeedResponse(reviews),
		},
		Categories:  ScoreCategories(reviews),
		Complaints:  Rank(complaints),
		Praises:     Rank(praises),
		ActionItems: ActionItems(complaints),
		Reviews:     SelectLowRated(reviews),
		IsDemo:      false,
	}

	if meta != nil {
		if meta.ReviewCount > 0 {
			result.Stats.TotalReviews = meta.ReviewCount
		}
		if meta.ReviewScore > 0 {
			result.Stats.AverageRating = meta.ReviewScore
		}
	}

	return result
}

// DisplayName is the place name, or a numbered placeholder.
func DisplayName(placeID string, meta *models.PlaceMetadata) string {
	if meta != nil && meta.HasName() {
		return meta.Name
	}
	return "레스토랑 #" + placeID
}

// CountMatches counts, per bucket, the reviews whose lower-cased body holds
// any of the bucket's keywords. Zero buckets are dropped; the rest are sorted
// by count with declaration order breaking ties.
func CountMatches(reviews []models.RawReview, buckets []Bucket) []Count {
	bodies := lowerBodies(reviews)
	counts := make([]Count, 0, len(buckets))
	for _, b := range buckets {
		n := 0
		for _, body := range bodies {
			if containsAny(body, b.Keywords) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, Count{Label: b.Label, Count: n})
		}
	}
	SortCounts(counts)
	return counts
}

// SortCounts orders by count descending, keeping input order for ties.
func SortCounts(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}

// Rank keeps the top three counts as ranked items.
func Rank(counts []Count) []models.RankedItem {
	n := min(len(counts), maxRanked)
	items := make([]models.RankedItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.RankedItem{
			Rank:  i + 1,
			Text:  counts[i].Label,
			Count: counts[i].Count,
		})
	}
	return items
}

// ActionItems maps the top three complaints to canned fixes.
func ActionItems(complaints []Count) []models.ActionItem {
	n := min(len(complaints), maxRanked)
	items := make([]models.ActionItem, 0, n)
	for i := 0; i < n; i++ {
		c := complaints[i]
		s, ok := SuggestionFor(c.Label)
		if !ok {
			s = Suggestion{Title: fmt.Sprintf("개선 포인트 %d", i+1), Text: genericSuggestion}
		}
		items = append(items, models.ActionItem{
			Number:     i + 1,
			Title:      s.Title,
			Problem:    fmt.Sprintf("\"%s\" 언급 %d회", c.Label, c.Count),
			Suggestion: s.Text,
		})
	}
	return items
}

// ScoreCategories scores the five fixed categories from review mentions.
func ScoreCategories(reviews []models.RawReview) []models.CategoryScore {
	bodies := lowerBodies(reviews)
	scores := make([]models.CategoryScore, 0, len(Categories))
	for _, cat := range Categories {
		pos, neg, mentioned := 0, 0, 0
		for _, body := range bodies {
			hasPos := containsAny(body, cat.Positive)
			hasNeg := containsAny(body, cat.Negative)
			if !hasPos && !hasNeg {
				continue
			}
			mentioned++
			if hasPos {
				pos++
			}
			if hasNeg {
				neg++
			}
		}
		scores = append(scores, NewCategoryScore(cat.Name, MentionScore(pos, neg), mentioned, true))
	}
	return scores
}

// MentionScore maps positive and negative mention counts onto 1.0-5.0.
func MentionScore(pos, neg int) float64 {
	ratio := noMentionRatio
	if total := pos + neg; total > 0 {
		ratio = float64(pos) / float64(total)
	}
	return Round1(1 + ratio*4)
}

// NewCategoryScore derives percentage and warning from a score. With
// gateMentions the attention warning also needs enough mentions; generated
// reports pass false.
func NewCategoryScore(name string, score float64, mentioned int, gateMentions bool) models.CategoryScore {
	score = Round1(score)
	cs := models.CategoryScore{
		Name:         name,
		Score:        score,
		Percentage:   int(math.Round(score * 20)),
		WarningLevel: models.WarningNone,
	}
	switch {
	case score < urgentBelow:
		cs.WarningLevel = models.WarningUrgent
		cs.Warning = "개선 필요"
	case score < attentionBelow && (!gateMentions || mentioned >= attentionMentions):
		cs.WarningLevel = models.WarningAttention
		cs.Warning = "주의 필요"
	}
	return cs
}

// NeedResponse counts every review rated two or lower.
func NeedResponse(reviews []models.RawReview) int {
	n := 0
	for _, r := range reviews {
		if r.Rating <= lowRatingLimit {
			n++
		}
	}
	return n
}

// SelectLowRated returns up to five low-rated reviews, lowest first, with
// masked authors and draft replies.
func SelectLowRated(reviews []models.RawReview) []models.ReviewWithReply {
	low := make([]models.RawReview, 0)
	for _, r := range reviews {
		if r.Rating <= lowRatingLimit {
			low = append(low, r)
		}
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Rating < low[j].Rating })
	if len(low) > maxReplies {
		low = low[:maxReplies]
	}

	out := make([]models.ReviewWithReply, 0, len(low))
	for _, r := range low {
		out = append(out, models.ReviewWithReply{
			Author:  MaskAuthor(r.Author),
			Rating:  r.Rating,
			Date:    FormatDate(r.Created),
			Text:    r.Body,
			AIReply: DraftReply(r.Body),
		})
	}
	return out
}

// MaskAuthor keeps the first character: "김철수" -> "김**".
func MaskAuthor(author string) string {
	r, size := utf8.DecodeRuneInString(author)
	if size == 0 {
		return "**"
	}
	return string(r) + "**"
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006.01.02",
}

// FormatDate renders a timestamp as YYYY.MM.DD in Korean time, or returns it
// unchanged when it cannot be parsed.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, kst); err == nil {
			return t.In(kst).Format("2006.01.02")
		}
	}
	return raw
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func averageRating(reviews []models.RawReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return Round1(float64(sum) / float64(len(reviews)))
}

func lowerBodies(reviews []models.RawReview) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = strings.ToLower(r.Body)
	}
	return out
}
