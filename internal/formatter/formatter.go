// package formatter provides functions to export mood history data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/moodscope/internal/models"
	"github.com/desertthunder/moodscope/internal/shared"
)

// HistoryExport bundles one user's mood history with its summary for export.
type HistoryExport struct {
	Username string
	Summary  models.MoodSummary
	Entries  []models.MoodEntry
}

// ExportToCSV converts a HistoryExport to CSV format with columns: Timestamp, Score, Emotion, Confidence
func ExportToCSV(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Timestamp", "Score", "Emotion", "Confidence"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range export.Entries {
		record := []string{
			entry.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(entry.Score),
			entry.Emotion,
			strconv.FormatFloat(entry.Confidence, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a HistoryExport to Markdown format
func ExportToMarkdown(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Mood History: %s\n\n", export.Username))

	buf.WriteString(fmt.Sprintf("**Average Mood**: %.2f/10\n", export.Summary.AverageMood))
	buf.WriteString(fmt.Sprintf("**Interpretation**: %s\n", export.Summary.Interpretation))
	buf.WriteString(fmt.Sprintf("**Predictions**: %d\n\n", export.Summary.TotalPredictions))

	buf.WriteString("## Scores\n\n")
	for i, entry := range export.Entries {
		emotionPart := ""
		if entry.Emotion != "" {
			emotionPart = fmt.Sprintf(" %s (%.2f)", entry.Emotion, entry.Confidence)
		}
		buf.WriteString(fmt.Sprintf("%d. %d/10%s - %s\n",
			i+1, entry.Score, emotionPart, entry.CreatedAt.Format("2006-01-02 15:04")))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a HistoryExport to plain text format
func ExportToText(export *HistoryExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("User: %s\n", export.Username))
	buf.WriteString(fmt.Sprintf("Average: %.2f (%s)\n", export.Summary.AverageMood, export.Summary.Interpretation))
	buf.WriteString(fmt.Sprintf("Predictions: %d\n\n", export.Summary.TotalPredictions))

	for i, entry := range export.Entries {
		buf.WriteString(fmt.Sprintf("%d. %d/10 %s\n", i+1, entry.Score, entry.Emotion))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates a JSON representation of the history summary (without entries)
func ToSummaryJSON(summary models.MoodSummary) ([]byte, error) {
	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ScoresFile  string
	SummaryFile string
}

// WriteCSVExport exports a mood history to CSV with an accompanying summary JSON file.
//
// Defaults to the username as the base filename & creates {base}_scores.csv and {base}_summary.json
func WriteCSVExport(export *HistoryExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Username
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	scoresFile := baseFilepath + "_scores.csv"
	if err := os.WriteFile(scoresFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(export.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVExportResult{
		ScoresFile:  scoresFile,
		SummaryFile: summaryFile,
	}, nil
}

// WriteMarkdownExport exports a mood history to a Markdown file.
//
// Defaults to {username}_history.md as the filename.
func WriteMarkdownExport(export *HistoryExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_history.md", export.Username)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a mood history to plain text format.
//
// Defaults to {username}_history.txt as the filename.
func WriteTextExport(export *HistoryExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_history.txt", export.Username)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
