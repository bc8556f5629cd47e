package sentiment

// Bucket is a named complaint or praise and the substrings that signal it.
type Bucket struct {
	Label    string
	Keywords []string
}

// Category is a scored dimension with its positive and negative signals.
type Category struct {
	Name     string
	Positive []string
	Negative []string
}

type Suggestion struct {
	Title string
	Text  string
}

// Declaration order is the tie-break order when ranking.
var ComplaintBuckets = []Bucket{
	{"대기 시간이 너무 길어요", []string{"기다", "대기", "느려", "오래", "시간", "늦"}},
	{"테이블/위생 상태가 아쉬워요", []string{"끈적", "더럽", "위생", "청결", "청소", "냄새", "벌레"}},
	{"양이 기대보다 적어요", []string{"양이 적", "양 적", "사진보다", "적어", "양이 좀"}},
	{"음식이 미지근해요", []string{"미지근", "식어", "차가", "안 뜨거", "식은"}},
	{"직원이 불친절해요", []string{"불친절", "태도", "무뚝뚝", "기분 나", "무시", "짜증"}},
	{"가격이 비싸요", []string{"비싸", "가격", "비쌈", "돈이 아까"}},
	{"반찬이 부실해요", []string{"반찬", "밑반찬", "리필", "안 줘"}},
	{"주차가 불편해요", []string{"주차", "파킹", "주차장"}},
	{"음식이 짜요", []string{"짜요", "짠", "짜다", "짭짤", "간이 세"}},
	{"소음이 심해요", []string{"시끄", "소음", "소리", "시끌"}},
}

var PraiseBuckets = []Bucket{
	{"가성비가 좋아요", []string{"가성비", "저렴", "싸고", "착한 가격", "합리적", "값어치"}},
	{"맛이 정말 좋아요", []string{"맛있", "맛집", "존맛", "진짜 맛", "최고", "먹을만"}},
	{"사장님이 친절해요", []string{"친절", "사장님", "웃으며", "다정", "배려"}},
	{"양이 많아요", []string{"양 많", "양이 많", "푸짐", "넉넉", "배부르"}},
	{"국물이 끝내줘요", []string{"국물", "육수", "진한", "깊은 맛", "시원한"}},
	{"재방문 의사 있어요", []string{"또 갈", "또 올", "재방문", "다시 갈", "또 가", "다시 가"}},
	{"분위기가 좋아요", []string{"분위기", "인테리어", "깔끔", "예쁘"}},
	{"빨리 나와요", []string{"빨리", "빠르", "바로", "금방"}},
	{"청결해요", []string{"깨끗", "청결", "정갈", "단정"}},
	{"주차가 편해요", []string{"주차 편", "주차장 넓", "주차 가능"}},
}

var Categories = []Category{
	{
		Name:     "음식 맛",
		Positive: []string{"맛있", "맛집", "존맛", "최고", "먹을만", "훌륭"},
		Negative: []string{"맛없", "별로", "실망", "그저 그"},
	},
	{
		Name:     "가격 대비 만족도",
		Positive: []string{"가성비", "저렴", "싸고", "착한 가격", "합리적"},
		Negative: []string{"비싸", "가격", "비쌈", "돈이 아까"},
	},
	{
		Name:     "서비스 속도",
		Positive: []string{"빨리", "빠르", "바로", "금방"},
		Negative: []string{"기다", "대기", "느려", "오래", "늦"},
	},
	{
		Name:     "청결도",
		Positive: []string{"깨끗", "청결", "정갈", "깔끔"},
		Negative: []string{"끈적", "더럽", "위생", "냄새", "벌레"},
	},
	{
		Name:     "친절도",
		Positive: []string{"친절", "다정", "배려", "웃으며"},
		Negative: []string{"불친절", "무뚝뚝", "기분 나", "무시", "짜증"},
	},
}

var suggestions = map[string]Suggestion{
	"대기 시간이 너무 길어요":   {"대기 시간 단축", "피크 타임 메뉴를 미리 준비해두고, 주문~서빙 시간을 체크해보세요"},
	"테이블/위생 상태가 아쉬워요": {"위생 관리 강화", `"매 손님마다 소독합니다" 문구를 테이블에 부착하고, 정리 주기를 줄여보세요`},
	"양이 기대보다 적어요":     {"메뉴 사진 현실화", "실제 나가는 음식 사진으로 메뉴판을 교체하고, 양을 조금 늘려보세요"},
	"음식이 미지근해요":       {"음식 온도 관리", "서빙 직전에 그릇을 예열하고, 조리 후 바로 서빙하는 프로세스를 만들어보세요"},
	"직원이 불친절해요":       {"서비스 교육", "기본 인사말 매뉴얼을 만들고, 주 1회 간단한 서비스 미팅을 해보세요"},
	"가격이 비싸요":         {"가격 인식 개선", "세트 메뉴나 점심 할인 메뉴를 도입해 가성비를 느낄 수 있게 해보세요"},
	"반찬이 부실해요":        {"반찬 보강", "기본 반찬 2~3가지를 늘리거나, 시그니처 반찬을 하나 추가해보세요"},
	"주차가 불편해요":        {"주차 안내 개선", "주변 공영주차장 안내 문구를 입구에 붙이고, 네이버에도 주차 정보를 업데이트하세요"},
	"음식이 짜요":          {"간 조절", "간을 약간 줄이거나, 주문 시 간 조절 옵션을 안내해보세요"},
	"소음이 심해요":         {"소음 관리", "배경 음악 볼륨을 줄이고, 테이블 간격을 조정해보세요"},
}

const genericSuggestion = "고객 의견을 반영하여 해당 부분을 개선해보세요"

// SuggestionFor returns the canned fix for a complaint label.
func SuggestionFor(label string) (Suggestion, bool) {
	s, ok := suggestions[label]
	return s, ok
}

// Labels returns bucket labels in declaration order, skipping any in exclude.
func Labels(buckets []Bucket, exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		if !skip[b.Label] {
			out = append(out, b.Label)
		}
	}
	return out
}
