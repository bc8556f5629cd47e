// internal/workers/analysis/analyze-reviews/models.go
package analyzereviews

import "sonnimal/internal/models"

type Input struct {
	URL string `json:"url"`
}

// Output is merged into the process variables on completion.
type Output struct {
	Analysis *models.AnalysisResult `json:"analysis"`
	Tier     string                 `json:"tier"`
	IsDemo   bool                   `json:"isDemo"`
}
