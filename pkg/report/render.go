package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// reportTpl 审查报告的 HTML 模板
// 章节顺序固定：标题页 → 执行摘要 → 数据源指标 → 风险分析 → 合规问卷 → 引用来源 → 保密页脚。
const reportTpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Vetting Report | {{ .CompanyName }}</title>
    <script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
    <style>
        :root {
            --primary-color: #1f77b4;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        .page {
            background: var(--card-bg);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 32px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
        }
        .title-page { text-align: center; padding: 60px 32px; }
        .title-page h1 { font-size: 2.2rem; margin-bottom: 8px; }
        .title-page .company { font-size: 1.6rem; color: var(--primary-color); font-weight: 700; }
        .meta { color: var(--text-secondary); margin-top: 16px; }
        h2 {
            border-bottom: 2px solid var(--primary-color);
            padding-bottom: 8px;
            display: inline-block;
        }
        .metric {
            display: inline-block;
            background: #eff6ff;
            border: 1px solid #bfdbfe;
            border-radius: 8px;
            padding: 12px 20px;
            margin: 8px 12px 8px 0;
        }
        .metric .value { font-size: 1.6rem; font-weight: 800; color: var(--primary-color); }
        .metric .label { color: var(--text-secondary); font-size: 0.85rem; }
        .cite-list { list-style: decimal; padding-left: 24px; }
        .cite-list li { margin-bottom: 6px; }
        .cite-list a { color: var(--primary-color); text-decoration: none; }
        .cite-list a:hover { text-decoration: underline; }
        .footer {
            text-align: center;
            color: var(--text-secondary);
            padding: 40px 32px;
        }
        .footer .confidential { font-size: 1.4rem; font-weight: 800; color: #991b1b; letter-spacing: 2px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="page title-page">
            <h1>AI-Powered Client Vetting Report</h1>
            <div class="company">{{ .CompanyName }}</div>
            <div class="meta">
                Report Generated: {{ .GeneratedAt.Format "January 2, 2006" }}<br>
                Analysis Type: {{ .AnalysisType }}<br>
                Run ID: {{ .RunID }}
            </div>
        </div>

        <div class="page">
            <h2>Executive Summary</h2>
            <div class="markdown-content" id="summary"></div>
            <div style="display:none" id="raw-summary">{{ .ExecutiveSummary }}</div>

            <div class="metric">
                <div class="value">{{ .Metrics.DataSourcesChecked }}</div>
                <div class="label">Data Sources Analyzed</div>
            </div>
            <div class="metric">
                <div class="value">{{ .Metrics.NegativeItemsFound }}</div>
                <div class="label">Risk Items Found</div>
            </div>
            <div class="metric">
                <div class="value">{{ .Metrics.CurrentStep }}</div>
                <div class="label">Final Step</div>
            </div>
        </div>

        <div class="page">
            <h2>Detailed Risk Analysis</h2>
            <div class="markdown-content" id="risk"></div>
            <div style="display:none" id="raw-risk">{{ .RiskAnalysis }}</div>
        </div>

        <div class="page">
            <h2>Brand Safety Compliance</h2>
            <div class="markdown-content" id="questions"></div>
            <div style="display:none" id="raw-questions">{{ .Questionnaire }}</div>
        </div>

        <div class="page">
            <h2>Data Sources &amp; Citations</h2>

            <h3>News &amp; Media Sources</h3>
            {{if .NewsCitations}}
            <ol class="cite-list">
                {{range .NewsCitations}}
                <li><a href="{{.URL}}" target="_blank">{{.Title}}</a></li>
                {{end}}
            </ol>
            {{else}}
            <p>No significant news sources found.</p>
            {{end}}

            <h3>Legal &amp; Regulatory Sources</h3>
            {{if .LegalCitations}}
            <ol class="cite-list">
                {{range .LegalCitations}}
                <li><a href="{{.URL}}" target="_blank">{{.Title}}</a></li>
                {{end}}
            </ol>
            {{else}}
            <p>No significant legal/regulatory sources found.</p>
            {{end}}

            <h3>Social Media Analysis</h3>
            {{if .SocialCounts}}
            <ul>
                {{range $platform, $count := .SocialCounts}}
                <li><b>{{$platform}}</b>: {{$count}} mentions</li>
                {{end}}
            </ul>
            {{else}}
            <p>Limited social media presence detected.</p>
            {{end}}

            {{if .ExecutiveFindings}}
            <h3>Executive Background Checks</h3>
            <ul>
                {{range .ExecutiveFindings}}
                <li><b>{{.Name}}</b>: {{.Total}} findings ({{.Positive}} positive / {{.Negative}} negative / {{.Neutral}} neutral)</li>
                {{end}}
            </ul>
            {{end}}
        </div>

        <div class="page footer">
            <div class="confidential">CONFIDENTIAL REPORT</div>
            <p>This report is generated by AI-powered analysis and should be reviewed by qualified personnel.</p>
            <p>Generated: {{ .GeneratedAt.Format "2006-01-02 15:04:05" }}</p>
        </div>
    </div>

    <script>
        // 解析 Markdown 叙述段落
        document.addEventListener('DOMContentLoaded', function() {
            const pairs = [
                ['raw-summary', 'summary'],
                ['raw-risk', 'risk'],
                ['raw-questions', 'questions']
            ];
            pairs.forEach(([rawID, targetID]) => {
                const raw = document.getElementById(rawID);
                if (raw) document.getElementById(targetID).innerHTML = marked.parse(raw.textContent);
            });
        });
    </script>
</body>
</html>
`

// Render 把报告写入给定 writer
func Render(rep *Report, w io.Writer) error {
	t, err := template.New("report").Parse(reportTpl)
	if err != nil {
		return err
	}
	return t.Execute(w, rep)
}

// WriteFile 渲染报告到输出目录，返回生成的文件路径
func WriteFile(rep *Report, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.html",
		strings.ReplaceAll(rep.CompanyName, " ", "_"),
		rep.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Render(rep, f); err != nil {
		return "", err
	}
	return path, nil
}
