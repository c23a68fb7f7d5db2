package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/fatih/color"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
)

var riskColors = map[models.RiskScore]*color.Color{
	models.RiskCritical: color.New(color.FgHiRed, color.Bold),
	models.RiskHigh:     color.New(color.FgRed, color.Bold),
	models.RiskMedium:   color.New(color.FgYellow, color.Bold),
	models.RiskLow:      color.New(color.FgGreen, color.Bold),
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintKeyValue(w io.Writer, key, value string) {
	_, _ = fmt.Fprintf(w, "   %s %s\n", Dim.Sprint(key+":"), color.New(color.FgWhite, color.Bold).Sprint(value))
}

// Risk colours a risk score for terminal output.
func Risk(score models.RiskScore) string {
	if c, ok := riskColors[score]; ok {
		return c.Sprint(score)
	}
	return string(score)
}

// PrintResult writes a human summary of a pipeline result.
func PrintResult(w io.Writer, result models.PipelineResult, t *i18n.Translations) {
	switch result.Status {
	case models.StatusSkipped:
		PrintInfo(w, t.GetMessage("ui_run_skipped", 0, map[string]interface{}{"Reason": result.Reason}))
	case models.StatusError:
		PrintError(w, t.GetMessage("ui_run_failed", 0, map[string]interface{}{"Error": result.Error}))
	default:
		PrintSuccess(w, t.GetMessage("ui_run_succeeded", 0, nil))
		PrintKeyValue(w, t.GetMessage("label_risk", 0, nil), Risk(result.Risk))
		if result.TestCaseCount != nil {
			PrintKeyValue(w, t.GetMessage("label_test_cases", 0, nil), fmt.Sprint(*result.TestCaseCount))
		}
		if result.SyncedTestCases != nil {
			PrintKeyValue(w, t.GetMessage("ui_synced_test_cases", 0, nil), fmt.Sprint(*result.SyncedTestCases))
		}
		if result.TicketKey != "" {
			PrintKeyValue(w, t.GetMessage("label_ticket", 0, nil), result.TicketKey)
		}
	}
}

// HandleAppError prints err with its type, cause and suggestion when it is an AppError.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)
	if appErr.Err != nil {
		_, _ = Dim.Fprintf(w, "   Details: %v\n", appErr.Err)
	}

	if appErr.Suggestion != "" {
		tryPrefix := "💡 Try: "
		if t != nil {
			tryPrefix = t.GetMessage("ui_try_suggestion", 0, nil)
		}
		_, _ = color.New(color.FgCyan).Fprint(w, tryPrefix)
		for i, line := range strings.Split(appErr.Suggestion, "\n") {
			if i == 0 {
				_, _ = fmt.Fprintln(w, line)
			} else {
				_, _ = fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
}
