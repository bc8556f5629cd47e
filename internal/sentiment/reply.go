package sentiment

import "strings"

const (
	replyOpening = "방문해 주셔서 감사합니다."
	replyGeneric = "말씀해 주신 부분을 꼼꼼히 살펴보고 개선하겠습니다."
	replyClosing = "다음에 방문하시면 더 나은 모습으로 보답하겠습니다. 소중한 의견 감사드립니다."
)

type replyTrigger struct {
	keywords []string
	sentence string
}

// Sentences are emitted in this order whatever order the triggers appear in
// the review.
var replyTriggers = []replyTrigger{
	{[]string{"기다", "대기", "느려", "오래"}, "긴 대기 시간으로 불편을 드려 죄송합니다. 더 빠른 서비스를 위해 노력하겠습니다."},
	{[]string{"끈적", "더럽", "더러", "위생", "청결"}, "청결 관리에 미흡한 점이 있었군요. 위생 관리를 더욱 철저히 하겠습니다."},
	{[]string{"맛없", "별로", "실망"}, "음식 맛이 기대에 못 미치셨군요. 조리법을 다시 점검하겠습니다."},
	{[]string{"미지근", "식어", "차가"}, "음식 온도 관리에 더 신경 쓰겠습니다."},
	{[]string{"불친절", "태도"}, "서비스가 부족했던 점 진심으로 사과드립니다. 직원 교육에 더 힘쓰겠습니다."},
}

// DraftReply assembles an owner reply from canned sentences.
func DraftReply(body string) string {
	parts := []string{replyOpening}
	for _, t := range replyTriggers {
		if containsAny(body, t.keywords) {
			parts = append(parts, t.sentence)
		}
	}
	if len(parts) == 1 {
		parts = append(parts, replyGeneric)
	}
	parts = append(parts, replyClosing)
	return strings.Join(parts, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
