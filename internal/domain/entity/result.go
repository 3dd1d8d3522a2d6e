package entity

import "time"

// CategoryResult is the outcome of processing one snapshot file.
type CategoryResult struct {
	Category string `json:"category"`
	Deals    []Deal `json:"deals"`
	// AIAnalysis is the decoded summarizer response, or an AnalysisError marker.
	AIAnalysis any `json:"ai_analysis"`
}

// AnalysisError replaces the summary of a category whose analysis request failed.
type AnalysisError struct {
	Error string `json:"error"`
}

// RunResult holds one CategoryResult per processed file, in discovery order.
type RunResult []CategoryResult

func (r RunResult) DealCount() int {
	total := 0
	for _, category := range r {
		total += len(category.Deals)
	}

	return total
}

// RunReport summarizes one run for logs, metrics and bot status replies.
type RunReport struct {
	TraceID         string
	StartedAt       time.Time
	FinishedAt      time.Time
	FilesDiscovered int
	FilesProcessed  int
	FilesFailed     int
	DealCount       int
	JSONPath        string
	CSVPath         string
	Error           string
}

func (r RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r RunReport) Succeeded() bool {
	return r.Error == ""
}
