// Package synthetic builds a reproducible demo report when no provider
// returned usable data. The same identifier always yields the same report.
package synthetic

import (
	"sonnimal/internal/models"
	"sonnimal/internal/sentiment"
)

var Names = []string{
	"맛있는 한식당",
	"행복한 국밥",
	"엄마손 밥상",
	"본가 설렁탕",
	"고향 칼국수",
	"진미 식당",
	"소문난 맛집",
	"황금 돈까스",
	"바다회 센터",
	"산들바람 갈비",
}

var (
	complaintPool = sentiment.Labels(sentiment.ComplaintBuckets, "소음이 심해요")
	praisePool    = sentiment.Labels(sentiment.PraiseBuckets, "주차가 편해요")
)

// categoryRanges are base and spread per category, in sentiment.Categories order.
var categoryRanges = [][2]float64{
	{3.8, 1.0},
	{3.5, 1.2},
	{2.8, 1.5},
	{3.0, 1.5},
	{3.8, 1.0},
}

type sampleReview struct {
	author string
	rating int
	date   string
	text   string
}

var sampleReviews = []sampleReview{
	{"김**", 2, "2025.01.28", "30분 넘게 기다렸는데 음식도 미지근하게 나왔어요. 테이블도 끈적거리고... 다시는 안 갈 것 같네요."},
	{"이**", 2, "2025.01.25", "반찬이 너무 짜요. 밑반찬 관리를 좀 해주세요."},
	{"박**", 1, "2025.01.20", "주문한 지 40분 넘게 음식이 안 나왔어요. 직원한테 물어봐도 태도가 불친절했습니다."},
}

// Generate returns the demo report for placeID. Draw order is fixed; changing
// it changes every generated report.
func Generate(placeID string) *models.AnalysisResult {
	g := newLCG(seedFor(placeID))

	name := Names[g.intn(len(Names))]
	totalReviews := g.intn(150) + 30
	avgRating := sentiment.Round1(3.5 + g.next()*1.3)
	needResponse := g.intn(8) + 2

	complaints := shuffle(g, complaintPool)
	praises := shuffle(g, praisePool)

	complaintCounts := make([]sentiment.Count, 0, 3)
	for _, label := range complaints[:3] {
		complaintCounts = append(complaintCounts, sentiment.Count{Label: label, Count: g.intn(15) + 5})
	}
	sentiment.SortCounts(complaintCounts)

	praiseCounts := make([]sentiment.Count, 0, 3)
	for _, label := range praises[:3] {
		praiseCounts = append(praiseCounts, sentiment.Count{Label: label, Count: g.intn(20) + 8})
	}
	sentiment.SortCounts(praiseCounts)

	categories := make([]models.CategoryScore, 0, len(sentiment.Categories))
	for i, cat := range sentiment.Categories {
		r := categoryRanges[i]
		categories = append(categories, sentiment.NewCategoryScore(cat.Name, r[0]+g.next()*r[1], 0, false))
	}

	reviewChange := g.intn(20) + 5

	shown := min(needResponse, len(sampleReviews))
	reviews := make([]models.ReviewWithReply, 0, shown)
	for _, s := range sampleReviews[:shown] {
		reviews = append(reviews, models.ReviewWithReply{
			Author:  s.author,
			Rating:  s.rating,
			Date:    s.date,
			Text:    s.text,
			AIReply: sentiment.DraftReply(s.text),
		})
	}

	return &models.AnalysisResult{
		Restaurant: models.Restaurant{
			Name:    name,
			PlaceID: placeID,
			Period:  sentiment.Period,
		},
		Stats: models.Stats{
			TotalReviews:  totalReviews,
			ReviewChange:  reviewChange,
			AverageRating: avgRating,
			NeedResponse:  needResponse,
		},
		Categories:  categories,
		Complaints:  sentiment.Rank(complaintCounts),
		Praises:     sentiment.Rank(praiseCounts),
		ActionItems: sentiment.ActionItems(complaintCounts),
		Reviews:     reviews,
		IsDemo:      true,
	}
}

// shuffle is a Fisher-Yates shuffle driven by g; the input is not modified.
func shuffle(g *lcg, in []string) []string {
	out := append([]string(nil), in...)
	for i := len(out) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
