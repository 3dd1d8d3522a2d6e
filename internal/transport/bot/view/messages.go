package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"deal_analyzer/internal/worker"
)

const StartMessage = `👋 <b>Deal Analyzer</b>

Daily report of the best discounts per category.

/status - scheduler state and last run
/run - start an analysis run now`

const (
	RunStarted        = "🚀 Analysis run started. The report will arrive in this chat."
	RunAlreadyRunning = "⏳ A run is already in progress, try again later."
	RunFailedToStart  = "❌ Could not start a run: %s"
)

const timeLayout = "2006-01-02 15:04:05"

// Status renders the scheduler state for /status.
func Status(status worker.Status) string {
	var sb strings.Builder

	sb.WriteString("📊 <b>Status</b>\n\n")

	if status.Running {
		sb.WriteString("🔍 <b>Analyzer:</b> 🟢 running\n")
	} else {
		sb.WriteString("🔍 <b>Analyzer:</b> ⚪ idle\n")
	}

	if !status.NextRun.IsZero() {
		fmt.Fprintf(&sb, "⏰ <b>Next run:</b> %s\n", status.NextRun.Format(timeLayout))
	}

	report := status.LastReport
	if report == nil {
		sb.WriteString("\n<i>No runs yet</i>")
		return sb.String()
	}

	sb.WriteString("\n📦 <b>Last run</b>\n")
	fmt.Fprintf(&sb, "Trace: <code>%s</code>\n", html.EscapeString(report.TraceID))

	if !report.FinishedAt.IsZero() {
		fmt.Fprintf(&sb, "Finished: %s (%s)\n",
			report.FinishedAt.Format(timeLayout),
			report.Duration().Round(time.Millisecond),
		)
	}

	fmt.Fprintf(&sb, "Files: %d processed, %d failed of %d\n",
		report.FilesProcessed, report.FilesFailed, report.FilesDiscovered)
	fmt.Fprintf(&sb, "Deals: %d\n", report.DealCount)

	if report.Succeeded() {
		sb.WriteString("Result: ✅ ok")
	} else {
		fmt.Fprintf(&sb, "Result: ❌ %s", html.EscapeString(report.Error))
	}

	return sb.String()
}
