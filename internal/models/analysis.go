// internal/models/analysis.go
package models

type WarningLevel string

const (
	WarningNone      WarningLevel = "none"
	WarningAttention WarningLevel = "attention"
	WarningUrgent    WarningLevel = "urgent"
)

// AnalysisResult is the report cached per place and handed to the dashboard.
type AnalysisResult struct {
	Restaurant  Restaurant        `json:"restaurant"`
	Stats       Stats             `json:"stats"`
	Categories  []CategoryScore   `json:"categories"`
	Complaints  []RankedItem      `json:"complaints"`
	Praises     []RankedItem      `json:"praises"`
	ActionItems []ActionItem      `json:"actionItems"`
	Reviews     []ReviewWithReply `json:"reviews"`
	IsDemo      bool              `json:"isDemo"`
}

type Restaurant struct {
	Name    string `json:"name"`
	PlaceID string `json:"placeId"`
	Period  string `json:"period"`
}

type Stats struct {
	TotalReviews  int     `json:"totalReviews"`
	ReviewChange  int     `json:"reviewChange"`
	AverageRating float64 `json:"averageRating"`
	NeedResponse  int     `json:"needResponse"`
}

type CategoryScore struct {
	Name         string       `json:"name"`
	Score        float64      `json:"score"`
	Percentage   int          `json:"percentage"`
	WarningLevel WarningLevel `json:"warningLevel"`
	Warning      string       `json:"warning,omitempty"`
}

type RankedItem struct {
	Rank  int    `json:"rank"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type ActionItem struct {
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Problem    string `json:"problem"`
	Suggestion string `json:"suggestion"`
}

type ReviewWithReply struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
	Text    string `json:"text"`
	AIReply string `json:"aiReply"`
}
