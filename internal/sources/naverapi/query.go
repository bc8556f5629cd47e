package naverapi

const placeInfoQuery = `query getPlaceInfo($id: String!) {
  place(id: $id) {
    name
    category
    visitorReviewCount
    visitorReviewScore
  }
}`

const visitorReviewsQuery = `query getVisitorReviews($input: VisitorReviewsInput) {
  visitorReviews(input: $input) {
    items {
      id
      rating
      author {
        nickname
      }
      body
      created
      visitCount
    }
    total
  }
}`

// operation is one entry of the batched request array the endpoint expects.
type operation struct {
	OperationName string      `json:"operationName"`
	Variables     interface{} `json:"variables"`
	Query         string      `json:"query"`
}

type reviewsInput struct {
	BusinessID           string `json:"businessId"`
	BusinessType         string `json:"businessType"`
	Page                 int    `json:"page"`
	Size                 int    `json:"size"`
	IsPhotoUsed          bool   `json:"isPhotoUsed"`
	IncludeContent       bool   `json:"includeContent"`
	GetUserPhotos        bool   `json:"getUserPhotos"`
	IncludeReceiptPhotos bool   `json:"includeReceiptPhotos"`
}

type placeInfoResponse []struct {
	Data struct {
		Place *struct {
			Name               string  `json:"name"`
			Category           string  `json:"category"`
			VisitorReviewCount int     `json:"visitorReviewCount"`
			VisitorReviewScore float64 `json:"visitorReviewScore"`
		} `json:"place"`
	} `json:"data"`
}

type visitorReviewsResponse []struct {
	Data struct {
		VisitorReviews *struct {
			Items []struct {
				ID     string  `json:"id"`
				Rating float64 `json:"rating"`
				Author *struct {
					Nickname string `json:"nickname"`
				} `json:"author"`
				Body       string `json:"body"`
				Created    string `json:"created"`
				VisitCount int    `json:"visitCount"`
			} `json:"items"`
			Total int `json:"total"`
		} `json:"visitorReviews"`
	} `json:"data"`
}
