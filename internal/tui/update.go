package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/cardscout/internal/catalog"
	"github.com/existflow/cardscout/internal/logger"
	"github.com/existflow/cardscout/internal/model"
	"github.com/existflow/cardscout/internal/pricing"
)

// searchDoneMsg is sent when a lookup settles with a priced card, either
// fetched from the catalog or synthesized locally
type searchDoneMsg struct {
	result   model.PricedCard
	fallback bool
}

// searchFailedMsg is sent when the workflow itself breaks, not when the
// catalog merely has nothing: that case settles through the fallback
type searchFailedMsg struct {
	err error
}

// Init starts the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case searchDoneMsg:
		// Clear the single-flight guard on every completion path
		m.searching = false
		m.result = &msg.result
		m.fromLocal = msg.fallback
		if msg.fallback {
			m.message = "No catalog match - estimated from card details"
		} else {
			m.message = ""
		}
		m.navigate(ScreenResults)
		return m, nil

	case searchFailedMsg:
		m.searching = false
		m.errText = msg.err.Error()
		m.navigate(ScreenError)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Logout):
			return m.handleLogout()
		}

		switch m.screen {
		case ScreenAuth:
			return m.updateAuth(msg)
		case ScreenCardInput:
			return m.updateCardInput(msg)
		case ScreenConfirm:
			return m.updateConfirm(msg)
		case ScreenLoading:
			// Keys are ignored while a search is in flight
			return m, nil
		case ScreenResults:
			return m.updateResults(msg)
		case ScreenError:
			return m.updateError(msg)
		}
	}

	return m, nil
}

func (m Model) handleLogout() (tea.Model, tea.Cmd) {
	if err := m.auth.Logout(); err != nil {
		m.message = "Logout error: " + err.Error()
		return m, nil
	}
	m.lookup.ClearCache()
	m.result = nil
	m.message = "Logged out"
	m.navigate(ScreenAuth)
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Toggle):
		if m.authMode == AuthLogin {
			m.authMode = AuthSignup
		} else {
			m.authMode = AuthLogin
		}
		m.message = ""
		m.focusFor(ScreenAuth)
		return m, nil

	case key.Matches(msg, keys.NextField):
		m.moveAuthFocus(1)
		return m, nil

	case key.Matches(msg, keys.PrevField):
		m.moveAuthFocus(-1)
		return m, nil

	case key.Matches(msg, keys.Submit):
		return m.submitAuth()
	}

	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

// moveAuthFocus cycles the auth form fields; login mode skips the name field
func (m *Model) moveAuthFocus(delta int) {
	first := fieldName
	if m.authMode == AuthLogin {
		first = fieldEmail
	}

	m.authInputs[m.authFocus].Blur()
	m.authFocus += delta
	if m.authFocus < first {
		m.authFocus = fieldPassword
	}
	if m.authFocus > fieldPassword {
		m.authFocus = first
	}
	m.authInputs[m.authFocus].Focus()
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	name := m.authInputs[fieldName].Value()
	email := m.authInputs[fieldEmail].Value()
	password := m.authInputs[fieldPassword].Value()

	var err error
	if m.authMode == AuthLogin {
		_, err = m.auth.Login(email, password)
	} else {
		_, err = m.auth.Signup(name, email, password)
	}
	if err != nil {
		// Validation and auth failures are recoverable: show inline, keep the form
		m.message = err.Error()
		return m, nil
	}

	m.message = ""
	m.authInputs[fieldPassword].SetValue("")
	m.navigate(ScreenCardInput)
	return m, nil
}

func (m Model) updateCardInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.NextField):
		m.moveCardFocus(1)
		return m, nil

	case key.Matches(msg, keys.PrevField):
		m.moveCardFocus(-1)
		return m, nil

	case key.Matches(msg, keys.Submit):
		return m.submitCardInput()
	}

	// The condition row is a picker, not a text input
	if m.cardFocus == fieldCondition {
		switch msg.String() {
		case "left", "h":
			m.condIdx = (m.condIdx + len(model.Conditions) - 1) % len(model.Conditions)
		case "right", "l", " ":
			m.condIdx = (m.condIdx + 1) % len(model.Conditions)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.cardInputs[m.cardFocus], cmd = m.cardInputs[m.cardFocus].Update(msg)
	return m, cmd
}

func (m *Model) moveCardFocus(delta int) {
	if m.cardFocus != fieldCondition {
		m.cardInputs[m.cardFocus].Blur()
	}
	m.cardFocus = (m.cardFocus + delta + cardFieldCount) % cardFieldCount
	if m.cardFocus != fieldCondition {
		m.cardInputs[m.cardFocus].Focus()
	}
}

func (m Model) submitCardInput() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.cardInputs[fieldCardName].Value())
	set := strings.TrimSpace(m.cardInputs[fieldCardSet].Value())

	// Name, set and condition are all required before confirming
	if name == "" || set == "" {
		m.message = "Card name and set are required"
		return m, nil
	}

	m.descriptor = model.CardDescriptor{
		Name:      name,
		Set:       set,
		Number:    strings.TrimSpace(m.cardInputs[fieldCardNumber].Value()),
		Condition: model.Conditions[m.condIdx],
		PhotoPath: strings.TrimSpace(m.cardInputs[fieldPhoto].Value()),
	}
	m.rememberDescriptor()

	m.message = ""
	m.navigate(ScreenConfirm)
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		return m.startSearch()
	case key.Matches(msg, keys.Back):
		m.navigate(ScreenCardInput)
		return m, nil
	}

	switch msg.String() {
	case "y":
		return m.startSearch()
	case "n":
		m.navigate(ScreenCardInput)
		return m, nil
	}
	return m, nil
}

// startSearch dispatches the lookup unless one is already in flight.
// A second trigger while searching is a silent no-op, not an error.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.searching {
		return m, nil
	}

	m.searching = true
	m.navigate(ScreenLoading)
	if m.screen != ScreenLoading {
		// Session guard redirected; release the guard and stay put
		m.searching = false
		return m, nil
	}

	logger.Info("Search dispatched",
		logger.F("name", m.descriptor.Name),
		logger.F("set", m.descriptor.Set))
	return m, tea.Batch(m.spin.Tick, searchCmd(m.lookup, m.descriptor))
}

// searchCmd runs the lookup off the UI loop. Transport failures and empty
// catalogs settle into a synthesized result, never a crash.
func searchCmd(lookup *catalog.Service, desc model.CardDescriptor) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(desc.Name) == "" {
			return searchFailedMsg{err: errors.New("nothing to search for")}
		}

		cards, err := lookup.Search(context.Background(), desc)

		fallback := false
		var card model.Card
		if err != nil || len(cards) == 0 {
			card = pricing.Synthesize(desc)
			fallback = true
		} else {
			card = cards[0]
		}

		return searchDoneMsg{
			result:   pricing.Enrich(card, desc.Condition),
			fallback: fallback,
		}
	}
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		m.message = ""
		m.navigate(ScreenCardInput)
		return m, nil
	}
	return m, nil
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m.startSearch()
	case "n", "enter":
		m.message = ""
		m.navigate(ScreenCardInput)
		return m, nil
	}
	return m, nil
}
