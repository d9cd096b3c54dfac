package domain

// Finding severities used by the page auditor.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
	SeverityInfo     = "INFO"
)

// Finding is one audit check outcome.
type Finding struct {
	Severity string `json:"type,omitempty"`
	Element  string `json:"element"`
	Issue    string `json:"issue,omitempty"`
	Status   string `json:"status,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// AuditScores summarizes an audit numerically.
type AuditScores struct {
	Overall        float64 `json:"overall"`
	Passed         int     `json:"passed"`
	Warnings       int     `json:"warnings"`
	CriticalIssues int     `json:"critical_issues"`
}

// AuditReport is the full result of auditing one page.
type AuditReport struct {
	URL        string      `json:"url"`
	AuditDate  string      `json:"audit_date"`
	StatusCode int         `json:"status_code"`
	LoadTime   float64     `json:"load_time_seconds"`
	PageSizeKB float64     `json:"page_size_kb"`
	Scores     AuditScores `json:"scores"`
	Issues     []Finding   `json:"issues"`
	Warnings   []Finding   `json:"warnings"`
	Passed     []Finding   `json:"passed"`
}
