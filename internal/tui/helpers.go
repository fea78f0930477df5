package tui

import "github.com/existflow/cardscout/internal/model"

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// formatSet joins set name and card number for display
func formatSet(set, number string) string {
	if number == "" {
		return set
	}
	return set + " #" + number
}

func conditionLabels() []string {
	return model.Conditions
}
