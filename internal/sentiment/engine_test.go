package sentiment

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sonnimal/internal/models"
)

func review(rating int, body string) models.RawReview {
	return models.RawReview{Rating: rating, Body: body, Author: "테스터", Created: "2025-01-15T12:00:00+09:00"}
}

func fixedEngine() *Engine {
	return New(WithReviewChange(func() int { return 12 }))
}

// ==========================
// Bucket counting
// ==========================

func TestCountMatches_CountsOncePerReview(t *testing.T) {
	reviews := []models.RawReview{
		review(2, "한참 기다렸고 대기 줄도 길고 너무 오래 걸렸어요"),
		review(3, "주차장이 좁아요"),
	}

	counts := CountMatches(reviews, ComplaintBuckets)

	require.Len(t, counts, 2)
	assert.Equal(t, Count{Label: "대기 시간이 너무 길어요", Count: 1}, counts[0])
	assert.Equal(t, Count{Label: "주차가 불편해요", Count: 1}, counts[1])
}

// "차가" (cold) is a substring of "주차가" (parking), so a parking complaint
// also lands in the temperature bucket. Known quirk of the keyword table.
func TestCountMatches_ParkingAlsoMatchesTemperature(t *testing.T) {
	counts := CountMatches([]models.RawReview{review(3, "주차가 어려워요")}, ComplaintBuckets)

	require.Len(t, counts, 2)
	assert.Equal(t, Count{Label: "음식이 미지근해요", Count: 1}, counts[0])
	assert.Equal(t, Count{Label: "주차가 불편해요", Count: 1}, counts[1])
}

func TestCountMatches_SortedWithStableTies(t *testing.T) {
	reviews := []models.RawReview{
		review(4, "주차장이 좁아요"),
		review(4, "주차 힘들어요"),
		review(4, "가격이 좀 있어요"),
		review(4, "반찬 리필이 안 돼요"),
	}

	counts := CountMatches(reviews, ComplaintBuckets)

	require.Len(t, counts, 3)
	assert.Equal(t, "주차가 불편해요", counts[0].Label)
	assert.Equal(t, 2, counts[0].Count)
	// 가격 is declared before 반찬, both have one mention.
	assert.Equal(t, "가격이 비싸요", counts[1].Label)
	assert.Equal(t, "반찬이 부실해요", counts[2].Label)

	for i := 1; i < len(counts); i++ {
		assert.GreaterOrEqual(t, counts[i-1].Count, counts[i].Count)
		assert.Positive(t, counts[i].Count)
	}
}

func TestCountMatches_LowerCases(t *testing.T) {
	counts := CountMatches([]models.RawReview{review(5, "가성비 GOOD")}, []Bucket{{"good", []string{"good"}}})
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Count)
}

func TestRank_CapsAtThree(t *testing.T) {
	items := Rank([]Count{{"a", 9}, {"b", 7}, {"c", 5}, {"d", 1}})
	require.Len(t, items, 3)
	assert.Equal(t, models.RankedItem{Rank: 1, Text: "a", Count: 9}, items[0])
	assert.Equal(t, 3, items[2].Rank)
	assert.NotNil(t, Rank(nil))
}

// ==========================
// Category scoring
// ==========================

func TestMentionScore(t *testing.T) {
	tests := []struct {
		pos, neg int
		want     float64
	}{
		{0, 0, 4.0},
		{5, 0, 5.0},
		{0, 5, 1.0},
		{1, 1, 3.0},
		{2, 1, 3.7},
		{1, 2, 2.3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.pos, tt.neg), func(t *testing.T) {
			got := MentionScore(tt.pos, tt.neg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMentionScore_AlwaysInRange(t *testing.T) {
	for pos := 0; pos <= 20; pos++ {
		for neg := 0; neg <= 20; neg++ {
			s := MentionScore(pos, neg)
			assert.GreaterOrEqual(t, s, 1.0)
			assert.LessOrEqual(t, s, 5.0)
		}
	}
}

func TestScoreCategories_ReviewCountsTowardBothPolarities(t *testing.T) {
	scores := ScoreCategories([]models.RawReview{review(3, "맛있는데 별로인 메뉴도 있어요")})

	require.Len(t, scores, 5)
	assert.Equal(t, "음식 맛", scores[0].Name)
	assert.Equal(t, 3.0, scores[0].Score)
	assert.Equal(t, 60, scores[0].Percentage)
	assert.Equal(t, models.WarningUrgent, scores[0].WarningLevel)
	assert.Equal(t, "개선 필요", scores[0].Warning)
}

// Real reviews only warn "attention" with three or more mentions while
// generated reports warn on score alone. Kept as observed.
func TestNewCategoryScore_AsymmetricAttentionGate(t *testing.T) {
	gatedFew := NewCategoryScore("서비스 속도", 3.7, 2, true)
	gatedMany := NewCategoryScore("서비스 속도", 3.7, 3, true)
	ungated := NewCategoryScore("서비스 속도", 3.7, 0, false)

	assert.Equal(t, models.WarningNone, gatedFew.WarningLevel)
	assert.Empty(t, gatedFew.Warning)
	assert.Equal(t, models.WarningAttention, gatedMany.WarningLevel)
	assert.Equal(t, "주의 필요", gatedMany.Warning)
	assert.Equal(t, models.WarningAttention, ungated.WarningLevel)
	assert.Equal(t, 74, ungated.Percentage)
}

func TestNewCategoryScore_Boundaries(t *testing.T) {
	assert.Equal(t, models.WarningNone, NewCategoryScore("x", 4.0, 10, true).WarningLevel)
	assert.Equal(t, models.WarningAttention, NewCategoryScore("x", 3.5, 10, true).WarningLevel)
	assert.Equal(t, models.WarningUrgent, NewCategoryScore("x", 3.4, 0, true).WarningLevel)
	assert.Equal(t, 4.3, NewCategoryScore("x", 4.26, 0, false).Score)
}

// ==========================
// Action items
// ==========================

func TestActionItems(t *testing.T) {
	items := ActionItems([]Count{
		{"대기 시간이 너무 길어요", 7},
		{"알 수 없는 불만", 3},
		{"음식이 짜요", 2},
		{"가격이 비싸요", 1},
	})

	require.Len(t, items, 3)
	assert.Equal(t, models.ActionItem{
		Number:     1,
		Title:      "대기 시간 단축",
		Problem:    `"대기 시간이 너무 길어요" 언급 7회`,
		Suggestion: "피크 타임 메뉴를 미리 준비해두고, 주문~서빙 시간을 체크해보세요",
	}, items[0])
	assert.Equal(t, "개선 포인트 2", items[1].Title)
	assert.Equal(t, "고객 의견을 반영하여 해당 부분을 개선해보세요", items[1].Suggestion)
	assert.Equal(t, "간 조절", items[2].Title)
}

func TestSuggestionTableCoversEveryComplaint(t *testing.T) {
	for _, b := range ComplaintBuckets {
		_, ok := SuggestionFor(b.Label)
		assert.True(t, ok, b.Label)
	}
}

// ==========================
// Low-rated selection
// ==========================

func TestSelectLowRated(t *testing.T) {
	reviews := []models.RawReview{
		{Rating: 2, Author: "김철수", Body: "first two", Created: "2025-01-28T10:00:00+09:00"},
		{Rating: 5, Author: "행복", Body: "great"},
		{Rating: 1, Author: "박영희", Body: "first one", Created: "2025-01-20"},
		{Rating: 2, Author: "", Body: "second two", Created: "어제"},
		{Rating: 1, Author: "이", Body: "second one", Created: "2025-01-10T01:00:00Z"},
		{Rating: 2, Author: "최", Body: "third two"},
		{Rating: 2, Author: "정", Body: "fourth two"},
	}

	got := SelectLowRated(reviews)

	require.Len(t, got, 5)
	assert.Equal(t, []string{"first one", "second one", "first two", "second two", "third two"},
		[]string{got[0].Text, got[1].Text, got[2].Text, got[3].Text, got[4].Text})
	assert.Equal(t, "박**", got[0].Author)
	assert.Equal(t, "2025.01.20", got[0].Date)
	assert.Equal(t, "2025.01.10", got[1].Date)
	assert.Equal(t, "2025.01.28", got[2].Date)
	assert.Equal(t, "**", got[3].Author)
	assert.Equal(t, "어제", got[3].Date)
	assert.NotEmpty(t, got[0].AIReply)

	assert.Equal(t, 6, NeedResponse(reviews))
}

func TestMaskAuthor(t *testing.T) {
	assert.Equal(t, "김**", MaskAuthor("김철수"))
	assert.Equal(t, "j**", MaskAuthor("jane"))
	assert.Equal(t, "**", MaskAuthor(""))
}

// ==========================
// Analyze
// ==========================

func TestAnalyze_NoKeywordMatches(t *testing.T) {
	reviews := make([]models.RawReview, 10)
	for i := range reviews {
		reviews[i] = review(5, "좋았습니다 감사해요")
	}

	result := fixedEngine().Analyze("1243837618", reviews, nil)

	require.Len(t, result.Categories, 5)
	for _, c := range result.Categories {
		assert.Equal(t, 4.0, c.Score, c.Name)
		assert.Equal(t, 80, c.Percentage)
		assert.Equal(t, models.WarningNone, c.WarningLevel)
	}
	assert.Empty(t, result.Complaints)
	assert.Empty(t, result.ActionItems)
	assert.Empty(t, result.Reviews)
	assert.False(t, result.IsDemo)
	assert.Equal(t, "레스토랑 #1243837618", result.Restaurant.Name)
	assert.Equal(t, 10, result.Stats.TotalReviews)
	assert.Equal(t, 5.0, result.Stats.AverageRating)
	assert.Equal(t, 12, result.Stats.ReviewChange)
}

func TestAnalyze_MetadataOverridesStats(t *testing.T) {
	reviews := []models.RawReview{review(1, "맛없고 불친절해요"), review(4, "맛있어요 최고")}
	meta := &models.PlaceMetadata{Name: "진미 식당", ReviewCount: 321, ReviewScore: 4.42}

	result := fixedEngine().Analyze("1243837618", reviews, meta)

	assert.Equal(t, "진미 식당", result.Restaurant.Name)
	assert.Equal(t, "최근 30일", result.Restaurant.Period)
	assert.Equal(t, 321, result.Stats.TotalReviews)
	assert.Equal(t, 4.42, result.Stats.AverageRating)
	assert.Equal(t, 1, result.Stats.NeedResponse)
	assert.Len(t, result.ActionItems, len(result.Complaints))
}

func TestAnalyze_NeedResponseNotCapped(t *testing.T) {
	reviews := make([]models.RawReview, 8)
	for i := range reviews {
		reviews[i] = review(1, "별로였어요")
	}

	result := fixedEngine().Analyze("1243837618", reviews, nil)

	assert.Equal(t, 8, result.Stats.NeedResponse)
	assert.Len(t, result.Reviews, 5)
	assert.Equal(t, 1.0, result.Stats.AverageRating)
}

func TestAnalyze_Deterministic(t *testing.T) {
	reviews := []models.RawReview{
		review(2, "대기 시간이 길고 테이블이 끈적거려요"),
		review(5, "국물이 진하고 사장님이 친절해요"),
	}
	a := fixedEngine().Analyze("1", reviews, nil)
	b := fixedEngine().Analyze("1", reviews, nil)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a.Reviews[0].AIReply, "방문해 주셔서 감사합니다."))
}
