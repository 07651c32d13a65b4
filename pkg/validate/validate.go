package validate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/iWorld-y/vetting_radar/pkg/config"
	"github.com/iWorld-y/vetting_radar/pkg/llm"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/model"
)

// 校验失败的原因代码
const (
	CodeMissingCredentials   = "missing_credentials"
	CodeEmpty                = "empty"
	CodeTooShort             = "too_short"
	CodeNumbersOnly          = "numbers_only"
	CodeInvalidChars         = "invalid_chars"
	CodePersonalName         = "personal_name"
	CodePossiblePersonalName = "possible_personal_name"
	CodeNoResults            = "no_results"
	CodeLimitedData          = "limited_data"
	CodeUnverifiable         = "unverifiable"
	CodePersonDetected       = "person_detected"
	CodeNameMismatch         = "name_mismatch"
)

// Verdict 一次门禁检查的结论
// 输入形态问题是预期内的可报告结果，不作为 error 抛出。
type Verdict struct {
	Proceed      bool
	Code         string
	Message      string
	DetectedName string // name_mismatch 时携带结果实际指向的公司名
}

func pass() Verdict {
	return Verdict{Proceed: true}
}

func reject(code, message string) Verdict {
	return Verdict{Code: code, Message: message}
}

// RejectionError 把阻断性 Verdict 包装为错误，便于调用方统一处理
type RejectionError struct {
	Verdict Verdict
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("vetting rejected (%s): %s", e.Verdict.Code, e.Verdict.Message)
}

// 公司名后缀指示词，出现任意一个即认为是公司而非个人
var companySuffixes = []string{
	"inc", "incorporated", "corp", "corporation", "llc", "ltd", "limited",
	"co", "company", "group", "holdings", "enterprises", "industries",
	"solutions", "systems", "technologies", "tech", "international",
	"global", "services", "partners", "capital", "ventures",
}

var (
	invalidCharsPattern = regexp.MustCompile("[<>{}|\\\\^~\\[\\]`]")
	titlePrefixPattern  = regexp.MustCompile(`(?i)\b(mr|mrs|ms|miss|dr|prof)\b`)
	// FirstName M. LastName
	middleInitialPattern = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]\.\s*[A-Z][a-z]+$`)
)

// Validator 在昂贵的分析开始前进行顺序门禁检查
type Validator struct {
	cfg       *config.Config
	completer llm.Completer
}

// NewValidator 创建校验器
func NewValidator(cfg *config.Config, completer llm.Completer) *Validator {
	return &Validator{cfg: cfg, completer: completer}
}

// Validate 按固定顺序执行全部检查，任一失败即短路返回
func (v *Validator) Validate(ctx context.Context, companyName string, raw *model.RawIntelligence) Verdict {
	if verdict := v.CheckCredentials(); !verdict.Proceed {
		return verdict
	}
	if verdict := v.CheckName(companyName); !verdict.Proceed {
		return verdict
	}
	if verdict := v.CheckSufficiency(raw); !verdict.Proceed {
		return verdict
	}
	return v.CrossVerify(ctx, companyName, raw)
}

// CheckCredentials 校验必需的外部凭证是否齐备
// 缺失凭证对本次运行是致命的，需要运维介入而非重试。
func (v *Validator) CheckCredentials() Verdict {
	var missing []string
	if v.cfg.SearchAPIKey() == "" {
		missing = append(missing, "search api key (web search)")
	}
	if v.cfg.LLM.APIKey == "" {
		missing = append(missing, "llm api key (text completion)")
	}
	if len(missing) > 0 {
		return reject(CodeMissingCredentials,
			fmt.Sprintf("missing required credentials: %s; add them to the config before retrying", strings.Join(missing, ", ")))
	}
	return pass()
}

// CheckName 基于启发式规则判断输入是否像公司名
func (v *Validator) CheckName(name string) Verdict {
	name = strings.TrimSpace(name)
	if name == "" {
		return reject(CodeEmpty, "company name cannot be empty")
	}
	if len(name) < 2 {
		return reject(CodeTooShort, "company name is too short; enter a valid company name")
	}
	if isDigitsOnly(name) {
		return reject(CodeNumbersOnly, "invalid input: enter a company name, not just numbers")
	}
	if invalidCharsPattern.MatchString(name) {
		return reject(CodeInvalidChars, "company name contains invalid characters")
	}
	if titlePrefixPattern.MatchString(name) || middleInitialPattern.MatchString(name) {
		return reject(CodePersonalName,
			fmt.Sprintf("%q appears to be a personal name, not a company; this tool vets companies, not individuals", name))
	}

	// 恰好两个首字母大写的词且没有公司后缀，大概率是人名
	words := strings.Fields(name)
	if len(words) == 2 && isTitleCase(words[0]) && isTitleCase(words[1]) {
		if !hasCompanySuffix(words[1]) {
			return reject(CodePossiblePersonalName,
				fmt.Sprintf("%q may be a personal name; if it is a company, include a suffix such as Inc, LLC or Corp", name))
		}
	}

	return pass()
}

// CheckSufficiency 根据采集结果量判断是否值得继续分析
// 零结果与极少结果分别给出不同的诊断信息，但都会阻断。
func (v *Validator) CheckSufficiency(raw *model.RawIntelligence) Verdict {
	if raw == nil || raw.TotalResults == 0 {
		return reject(CodeNoResults,
			"no information found: the company likely does not exist or the name is incorrect; verify the exact legal name")
	}
	if raw.TotalResults < 3 {
		return reject(CodeLimitedData,
			fmt.Sprintf("very limited data found (%d results): the name may be misspelled or the company too small; verify before proceeding", raw.TotalResults))
	}
	return pass()
}

const verifySystemPrompt = "You are a strict data verification assistant. Your job is to prevent false matches and hallucinations."

// CrossVerify 用 LLM 交叉验证搜索结果确实指向所查公司
// 该检查是安全网而非硬性要求：调用失败时放行，避免供应商抖动导致工具不可用。
func (v *Validator) CrossVerify(ctx context.Context, companyName string, raw *model.RawIntelligence) Verdict {
	var titles []string
	for i, r := range raw.General {
		if i >= 5 {
			break
		}
		if r.Title != "" {
			titles = append(titles, r.Title)
		}
	}
	for i, r := range raw.News {
		if i >= 3 {
			break
		}
		if r.Title != "" {
			titles = append(titles, r.Title)
		}
	}
	if len(titles) == 0 {
		return reject(CodeUnverifiable, "no search result titles available to verify the company identity")
	}

	var sb strings.Builder
	for _, t := range titles {
		sb.WriteString("- ")
		sb.WriteString(t)
		sb.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are a data verification expert. Analyze if the search results match the input query.

INPUT QUERY: %q

SEARCH RESULT TITLES:
%s
Answer these questions:
1. Are these search results about a COMPANY or about a PERSON?
2. If it's a company, what is the EXACT company name from the results?
3. Does the company name in results MATCH the input query %q?
4. If it's different, what company are the results actually about?

Respond in this exact format:
TYPE: [COMPANY or PERSON]
EXACT_NAME: [exact company name from results or "N/A"]
MATCH: [YES or NO]
ACTUAL_SUBJECT: [what the results are actually about]
CONFIDENCE: [HIGH, MEDIUM, or LOW]

Be very strict. If the results are about a different company or person, say NO for MATCH.`, companyName, sb.String(), companyName)

	resp, err := v.completer.Complete(ctx, verifySystemPrompt, prompt, 0.1, 300)
	if err != nil {
		logger.Log.Warnf("LLM 交叉验证失败，放行 [%s]: %v", companyName, err)
		return pass()
	}

	detected := companyName
	for _, line := range strings.Split(resp, "\n") {
		if strings.HasPrefix(line, "EXACT_NAME:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "EXACT_NAME:"))
			if name != "" && name != "N/A" {
				detected = name
			}
		}
	}

	if !strings.Contains(resp, "TYPE: COMPANY") {
		return reject(CodePersonDetected,
			fmt.Sprintf("%q appears to be a person, not a company: the search results describe an individual", companyName))
	}
	if !strings.Contains(resp, "MATCH: YES") {
		return Verdict{
			Code:         CodeNameMismatch,
			DetectedName: detected,
			Message: fmt.Sprintf("search results mismatch: you searched for %q but results are about %q; enter the exact legal company name",
				companyName, detected),
		}
	}

	return pass()
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isTitleCase(word string) bool {
	runes := []rune(word)
	if len(runes) < 2 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func hasCompanySuffix(lastWord string) bool {
	w := strings.TrimRight(strings.ToLower(lastWord), ".")
	for _, suffix := range companySuffixes {
		if strings.Contains(w, suffix) {
			return true
		}
	}
	return false
}
