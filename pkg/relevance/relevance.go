package relevance

import (
	"strings"

	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/search"
)

// IsRelevant 判断单条搜索结果是否确实在谈论目标主体
// 单词主体要求全名出现；多词主体要求长度大于 2 的词中至少一半命中。
func IsRelevant(r search.Result, subject string) bool {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return false
	}

	fullText := strings.ToLower(r.Title) + " " + strings.ToLower(r.Content) + " " + strings.ToLower(r.URL)

	words := strings.Fields(subject)
	if len(words) == 1 {
		return strings.Contains(fullText, subject)
	}

	matches := 0
	for _, word := range words {
		if len(word) > 2 && strings.Contains(fullText, word) {
			matches++
		}
	}
	return float64(matches) >= float64(len(words))*0.5
}

// Filter 过滤掉与主体无关的结果，保持原有顺序
func Filter(results []search.Result, subject string) []search.Result {
	relevant := make([]search.Result, 0, len(results))
	for _, r := range results {
		if IsRelevant(r, subject) {
			relevant = append(relevant, r)
		}
	}

	if dropped := len(results) - len(relevant); dropped > 0 {
		logger.Log.Debugf("相关性过滤移除了 %d 条无关结果 [%s]", dropped, subject)
	}

	return relevant
}
