package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/goccy/go-json"

	"github.com/existflow/cardscout/internal/auth"
	"github.com/existflow/cardscout/internal/catalog"
	"github.com/existflow/cardscout/internal/logger"
	"github.com/existflow/cardscout/internal/model"
	"github.com/existflow/cardscout/internal/storage"
)

// Screen identifies one step of the pricing workflow
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenCardInput
	ScreenConfirm
	ScreenLoading
	ScreenResults
	ScreenError
)

// String returns the stable screen name used in the scratch store
func (s Screen) String() string {
	switch s {
	case ScreenAuth:
		return "auth"
	case ScreenCardInput:
		return "card-input"
	case ScreenConfirm:
		return "confirmation"
	case ScreenLoading:
		return "loading"
	case ScreenResults:
		return "results"
	case ScreenError:
		return "error"
	default:
		return "unknown"
	}
}

// protected reports whether entering this screen requires a session
func (s Screen) protected() bool {
	switch s {
	case ScreenCardInput, ScreenConfirm, ScreenLoading, ScreenResults:
		return true
	}
	return false
}

// AuthMode selects which form the auth screen shows
type AuthMode int

const (
	AuthLogin AuthMode = iota
	AuthSignup
)

// Auth form field indices
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	authFieldCount
)

// Card form field indices; fieldCondition is virtual (no textinput)
const (
	fieldCardName = iota
	fieldCardSet
	fieldCardNumber
	fieldCondition
	fieldPhoto
	cardFieldCount
)

// Model is the main TUI model, a state machine over the workflow screens
type Model struct {
	auth    *auth.Store
	lookup  *catalog.Service
	scratch *storage.Scratch

	// UI state
	width   int
	height  int
	screen  Screen
	message string

	// Auth form
	authMode   AuthMode
	authInputs []textinput.Model
	authFocus  int

	// Card form
	cardInputs []textinput.Model
	cardFocus  int
	condIdx    int

	// Active workflow state
	descriptor model.CardDescriptor
	result     *model.PricedCard
	fromLocal  bool // result was synthesized, not fetched
	errText    string

	// Single-flight guard: one search outstanding at most
	searching bool

	spin spinner.Model
}

// NewModel creates the TUI model. The initial screen depends on whether a
// session survived from a previous run.
func NewModel(authStore *auth.Store, lookup *catalog.Service) Model {
	m := Model{
		auth:    authStore,
		lookup:  lookup,
		scratch: storage.NewScratch(),
		condIdx: 0,
	}

	m.authInputs = make([]textinput.Model, authFieldCount)
	for i := range m.authInputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		m.authInputs[i] = ti
	}
	m.authInputs[fieldName].Placeholder = "Name"
	m.authInputs[fieldEmail].Placeholder = "Email"
	m.authInputs[fieldPassword].Placeholder = "Password"
	m.authInputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.authInputs[fieldPassword].EchoCharacter = '*'

	m.cardInputs = make([]textinput.Model, cardFieldCount)
	for i := range m.cardInputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		m.cardInputs[i] = ti
	}
	m.cardInputs[fieldCardName].Placeholder = "Card name (e.g. Charizard)"
	m.cardInputs[fieldCardSet].Placeholder = "Set (e.g. Base Set)"
	m.cardInputs[fieldCardNumber].Placeholder = "Card number (optional)"
	m.cardInputs[fieldPhoto].Placeholder = "Photo path (optional)"

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.spin.Style = spinnerStyle

	if authStore.IsLoggedIn() {
		m.screen = ScreenCardInput
		m.cardInputs[fieldCardName].Focus()
	} else {
		m.screen = ScreenAuth
		m.authFocus = fieldEmail
		m.authInputs[fieldEmail].Focus()
	}
	m.scratch.Set(storage.KeyCurrentScreen, m.screen.String())

	logger.Info("Workflow started", logger.F("screen", m.screen.String()))
	return m
}

// navigate moves to a screen, re-checking the session guard on every entry
// to a protected screen, not just the first.
func (m *Model) navigate(to Screen) {
	if to.protected() && !m.auth.IsLoggedIn() {
		logger.Warn("Blocked entry to protected screen", logger.F("screen", to.String()))
		m.message = "Please log in first"
		to = ScreenAuth
	}

	m.scratch.Set(storage.KeyPreviousScreen, m.screen.String())
	m.scratch.Set(storage.KeyCurrentScreen, to.String())
	m.screen = to

	m.focusFor(to)
}

// focusFor puts the cursor on the right field when a form screen opens
func (m *Model) focusFor(s Screen) {
	for i := range m.authInputs {
		m.authInputs[i].Blur()
	}
	for i := range m.cardInputs {
		m.cardInputs[i].Blur()
	}

	switch s {
	case ScreenAuth:
		if m.authMode == AuthLogin {
			m.authFocus = fieldEmail
		} else {
			m.authFocus = fieldName
		}
		m.authInputs[m.authFocus].Focus()
	case ScreenCardInput:
		m.cardFocus = fieldCardName
		m.cardInputs[fieldCardName].Focus()
	}
}

// rememberDescriptor mirrors the descriptor into the scratch store
func (m *Model) rememberDescriptor() {
	if data, err := json.Marshal(m.descriptor); err == nil {
		m.scratch.Set(storage.KeyCardData, string(data))
	}
}

// CurrentScreen exposes the active screen name
func (m Model) CurrentScreen() string {
	return m.screen.String()
}

// Message exposes the inline status message
func (m Model) Message() string {
	return m.message
}
