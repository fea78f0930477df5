package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var panel string
	switch m.screen {
	case ScreenAuth:
		panel = m.renderAuth()
	case ScreenCardInput:
		panel = m.renderCardInput()
	case ScreenConfirm:
		panel = m.renderConfirm()
	case ScreenLoading:
		panel = m.renderLoading()
	case ScreenResults:
		panel = m.renderResults()
	case ScreenError:
		panel = m.renderError()
	}

	content := lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		panel,
		lipgloss.WithWhitespaceChars(" "),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

func (m Model) renderAuth() string {
	title := "Log In"
	hint := "ctrl+s: create an account instead"
	if m.authMode == AuthSignup {
		title = "Sign Up"
		hint = "ctrl+s: log in instead"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("CardScout") + "\n")
	b.WriteString(HelpStyle.Render("Trading card price checker") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	if m.authMode == AuthSignup {
		b.WriteString(LabelStyle.Render("Name") + m.authInputs[fieldName].View() + "\n")
	}
	b.WriteString(LabelStyle.Render("Email") + m.authInputs[fieldEmail].View() + "\n")
	b.WriteString(LabelStyle.Render("Password") + m.authInputs[fieldPassword].View() + "\n\n")

	if m.message != "" {
		b.WriteString(MessageStyle.Render(m.message) + "\n\n")
	}
	b.WriteString(HelpStyle.Render(hint))

	return PanelStyle.Render(b.String())
}

func (m Model) renderCardInput() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Describe Your Card") + "\n\n")

	b.WriteString(LabelStyle.Render("Name") + m.cardInputs[fieldCardName].View() + "\n")
	b.WriteString(LabelStyle.Render("Set") + m.cardInputs[fieldCardSet].View() + "\n")
	b.WriteString(LabelStyle.Render("Number") + m.cardInputs[fieldCardNumber].View() + "\n")
	b.WriteString(LabelStyle.Render("Condition") + m.renderConditionPicker() + "\n")
	b.WriteString(LabelStyle.Render("Photo") + m.cardInputs[fieldPhoto].View() + "\n\n")

	if m.message != "" {
		b.WriteString(MessageStyle.Render(m.message) + "\n\n")
	}
	b.WriteString(HelpStyle.Render("enter: continue"))

	return PanelStyle.Render(b.String())
}

func (m Model) renderConditionPicker() string {
	var parts []string
	for i, cond := range conditionLabels() {
		style := HelpStyle
		if i == m.condIdx {
			style = SelectedStyle
			if m.cardFocus == fieldCondition {
				cond = "❮ " + cond + " ❯"
			}
		}
		parts = append(parts, style.Render(cond))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderConfirm() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Confirm Search") + "\n\n")

	b.WriteString(LabelStyle.Render("Name") + ValueStyle.Render(m.descriptor.Name) + "\n")
	b.WriteString(LabelStyle.Render("Set") + ValueStyle.Render(m.descriptor.Set) + "\n")
	if m.descriptor.Number != "" {
		b.WriteString(LabelStyle.Render("Number") + ValueStyle.Render(m.descriptor.Number) + "\n")
	}
	b.WriteString(LabelStyle.Render("Condition") + ValueStyle.Render(m.descriptor.Condition) + "\n")
	if m.descriptor.PhotoPath != "" {
		b.WriteString(LabelStyle.Render("Photo") + ValueStyle.Render(truncate(m.descriptor.PhotoPath, 40)) + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("y/enter: look up price  n/esc: edit"))

	return PanelStyle.Render(b.String())
}

func (m Model) renderLoading() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Looking Up Price") + "\n\n")
	b.WriteString(m.spin.View() + " Searching the catalog for " + m.descriptor.Name + "...")
	return PanelStyle.Render(b.String())
}

func (m Model) renderResults() string {
	if m.result == nil {
		return PanelStyle.Render("No result")
	}
	r := m.result

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Estimated Value") + "\n\n")

	b.WriteString(LabelStyle.Render("Card") + ValueStyle.Render(r.Name) + "\n")
	b.WriteString(LabelStyle.Render("Set") + ValueStyle.Render(formatSet(r.Set, r.Number)) + "\n")
	if r.Rarity != "" {
		b.WriteString(LabelStyle.Render("Rarity") + ValueStyle.Render(r.Rarity) + "\n")
	}
	if r.Type != "" {
		b.WriteString(LabelStyle.Render("Type") + ValueStyle.Render(r.Type) + "\n")
	}
	if r.HP != "" {
		b.WriteString(LabelStyle.Render("HP") + ValueStyle.Render(r.HP) + "\n")
	}
	b.WriteString(LabelStyle.Render("Condition") + ValueStyle.Render(r.SelectedCondition) + "\n\n")

	b.WriteString(PriceStyle.Render(fmt.Sprintf("$%.2f", r.AdjustedPrice)) + "\n")
	b.WriteString(HelpStyle.Render(r.PriceBreakdown) + "\n")

	if m.fromLocal {
		b.WriteString("\n" + MessageStyle.Render("Estimate based on card details; no exact catalog match") + "\n")
	}

	b.WriteString("\n" + HelpStyle.Render("n/enter: new search  ctrl+l: logout"))

	return PanelStyle.Render(b.String())
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Something Went Wrong") + "\n\n")
	b.WriteString(ValueStyle.Render(truncate(m.errText, 60)) + "\n\n")
	b.WriteString(HelpStyle.Render("r: retry  n: new search"))
	return PanelStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	help := "tab: next field  ctrl+l: logout  ctrl+c: quit"
	switch m.screen {
	case ScreenConfirm:
		help = "y: confirm  n: edit  ctrl+c: quit"
	case ScreenLoading:
		help = "searching..."
	case ScreenResults, ScreenError:
		help = "n: new search  ctrl+l: logout  ctrl+c: quit"
	}

	if m.message != "" && m.screen != ScreenAuth && m.screen != ScreenCardInput {
		help = m.message
	}

	return StatusBarStyle.Width(m.width).Render(help)
}
