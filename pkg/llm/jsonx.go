package llm

import (
	"encoding/json"
	"strings"
)

// StripFences 去除 LLM 输出中的 markdown 代码块标记
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "```") {
		// 截取第一对围栏之间的内容
		parts := strings.SplitN(s, "```", 3)
		if len(parts) >= 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
	}
	return strings.TrimSpace(s)
}

// ParseStringArray 从 LLM 输出中解析 JSON 字符串数组
// 解析失败时返回空切片，该失败模式是调用方约定的一部分。
func ParseStringArray(raw string) []string {
	clean := StripFences(raw)

	var items []string
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return []string{}
	}
	return items
}
