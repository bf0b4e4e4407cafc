package model

import "time"

// ReportSummary holds the headline counts for a periodic report.
type ReportSummary struct {
	TotalTransactions    int `json:"totalTransactions"`
	NewTransactions      int `json:"newTransactions"`
	BudgetsUsed          int `json:"budgetsUsed"`
	SuggestionsGenerated int `json:"suggestionsGenerated"`
}

// Report is a point-in-time summary of the user's financial activity.
type Report struct {
	CreatedAt time.Time
	Type      string
	Period    string
	ID        int64
	Summary   ReportSummary
}
