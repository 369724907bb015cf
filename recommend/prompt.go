package recommend

import (
	"fmt"
	"strings"
)

// BuildPrompt 构造查询 prompt：固定引导语加可选的偏好补充。
//
//	BuildPrompt(5, "pets", nil)                  → "Recommend me 5 pets"
//	BuildPrompt(5, "pets", []string{"dog","cat"}) → "Recommend me 5 pets (I like: dog, cat)"
//
// 偏好列表为空时不拼接括号子句。
func BuildPrompt(k int, category string, preferences []string) string {
	prompt := fmt.Sprintf("Recommend me %d %s", k, category)
	if len(preferences) > 0 {
		prompt += fmt.Sprintf(" (I like: %s)", strings.Join(preferences, ", "))
	}
	return prompt
}
