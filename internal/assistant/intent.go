package assistant

import "strings"

// Intent 是输入文本被归入的意图类别。
type Intent int

const (
	IntentSchedule Intent = iota
	IntentProjects
	IntentServices
	IntentFallback
)

// intentBuckets 按固定优先级排列：排期 → 项目 → 服务。
// 每个桶同时包含英文和法文关键词，匹配不区分语言。
var intentBuckets = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSchedule, []string{"schedule", "call", "meeting", "rendez-vous", "rdv", "appel", "réunion", "reunion"}},
	{IntentProjects, []string{"project", "work", "portfolio", "projet", "travail", "réalisation", "realisation"}},
	{IntentServices, []string{"service", "offer", "help", "offre", "aide"}},
}

// DetectIntent 对输入做大小写不敏感的子串匹配，
// 按优先级顺序测试各个桶，第一个命中的桶生效；全不命中返回 IntentFallback。
func DetectIntent(text string) Intent {
	lowered := strings.ToLower(text)
	for _, bucket := range intentBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lowered, keyword) {
				return bucket.intent
			}
		}
	}
	return IntentFallback
}
