package extract

import "strings"

type categoryRule struct {
	category string
	terms    []string
}

// skillCategoryRules are evaluated in order; the first hit wins.
var skillCategoryRules = []categoryRule{
	{CategoryUtility, []string{"查询", "搜索", "管理", "工具", "query", "search", "manage", "tool"}},
	{CategoryDevelopment, []string{"集成", "开发", "api", "github", "integration", "develop"}},
}

// skillCategory classifies a skill from its title and the keywords extracted
// for it (sentinel keywords excluded).
func skillCategory(title string, keywords []string) string {
	hay := strings.ToLower(title) + "\n" + strings.Join(keywords, "\n")
	for _, r := range skillCategoryRules {
		for _, term := range r.terms {
			if strings.Contains(hay, term) {
				return r.category
			}
		}
	}
	return CategorySystem
}
