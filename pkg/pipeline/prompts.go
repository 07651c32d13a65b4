package pipeline

// 各阶段的 system prompt
const (
	extractionSystem = "You are an expert at entity extraction and corporate intelligence analysis."
	riskSystem       = "You are an expert corporate risk analyst specializing in brand safety and reputation management."
	questionsSystem  = "You are a P&G brand safety compliance officer making critical vetting decisions."
	reportSystem     = "You are a senior compliance officer creating executive-level reports."
)

// 风险分析阶段筛选负面线索的关键词
var riskKeywords = []string{"scandal", "lawsuit", "fraud", "violation", "controversy", "investigation"}

// 固定的 7 个合规审查问题
var complianceQuestions = []string{
	"Does the company have a positive corporate reputation?",
	"Is the company free from current and serious public scandals?",
	"Is the company free from current and serious regulatory violations?",
	"Is the company free from current and serious legal violations?",
	"Are the company's principals/executives free from serious misconduct?",
	"Is there no negative media event likely to cause a PR 'black eye'?",
	"Does the company comply with brand safety standards?",
}
