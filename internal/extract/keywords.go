package extract

import (
	"strings"
	"unicode/utf8"
)

var skillTitleStopwords = map[string]struct{}{
	"技能":           {},
	"工具":           {},
	"助手":           {},
	"skill":        {},
	"tool":         {},
	"assistant":    {},
	"name":         {},
	"name:":        {},
	"description:": {},
	"---":          {},
}

// skillVocabulary is matched against skill descriptions.
var skillVocabulary = []string{
	"查询", "管理", "搜索", "工具", "助手", "集成", "api", "文档", "系统", "功能",
	"网络", "技能", "播放器", "开发", "实用",
	"query", "manage", "search", "integration", "document", "system", "feature",
}

// documentVocabulary is matched against document titles.
var documentVocabulary = []string{
	"文档", "说明", "指南", "api", "接口", "功能", "教程", "配置",
	"guide", "reference", "tutorial",
}

var (
	fallbackSkillKeywords    = []string{"openclaw", "技能", "工具"}
	fallbackDocumentKeywords = []string{"文档", "openclaw", "说明"}
)

// keywordSet keeps first-seen order so that rebuilding an unchanged tree
// yields identical records.
type keywordSet struct {
	seen map[string]struct{}
	list []string
}

func (k *keywordSet) add(w string) {
	if k.seen == nil {
		k.seen = map[string]struct{}{}
	}
	if _, ok := k.seen[w]; ok {
		return
	}
	k.seen[w] = struct{}{}
	k.list = append(k.list, w)
}

// result caps the set at MaxKeywords, substituting fallback when empty.
func (k *keywordSet) result(fallback []string) []string {
	if len(k.list) == 0 {
		return append([]string(nil), fallback...)
	}
	out := k.list
	if len(out) > MaxKeywords {
		out = out[:MaxKeywords]
	}
	return append([]string(nil), out...)
}

func titleWords(title string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if utf8.RuneCountInString(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

func skillKeywords(title, description string) *keywordSet {
	ks := &keywordSet{}
	for _, w := range titleWords(title) {
		if _, stop := skillTitleStopwords[w]; stop {
			continue
		}
		ks.add(w)
	}
	desc := strings.ToLower(description)
	for _, term := range skillVocabulary {
		if strings.Contains(desc, term) {
			ks.add(term)
		}
	}
	return ks
}

func documentKeywords(title string) *keywordSet {
	ks := &keywordSet{}
	for _, w := range titleWords(title) {
		ks.add(w)
	}
	lower := strings.ToLower(title)
	for _, term := range documentVocabulary {
		if strings.Contains(lower, term) {
			ks.add(term)
		}
	}
	return ks
}
