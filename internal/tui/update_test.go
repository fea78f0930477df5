package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/cardscout/internal/auth"
	"github.com/existflow/cardscout/internal/catalog"
	"github.com/existflow/cardscout/internal/model"
	"github.com/existflow/cardscout/internal/pricing"
	"github.com/existflow/cardscout/internal/storage"
)

// newTestModel builds a model against a temp credential store and a stub
// catalog serving the given response body.
func newTestModel(t *testing.T, loggedIn bool, catalogBody string) (Model, *auth.Store) {
	t.Helper()

	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	authStore, err := auth.NewStore(kv)
	require.NoError(t, err)

	if loggedIn {
		_, err = authStore.Login(auth.DemoEmail, auth.DemoPassword)
		require.NoError(t, err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogBody))
	}))
	t.Cleanup(srv.Close)

	lookup := catalog.NewService(catalog.NewClient(srv.URL), time.Hour)
	return NewModel(authStore, lookup), authStore
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got, cmd
}

func pressRune(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	return pressKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestInitialScreenLoggedOut(t *testing.T) {
	m, _ := newTestModel(t, false, `{"data": []}`)

	assert.Equal(t, "auth", m.CurrentScreen())

	mirrored, ok := m.scratch.Get(storage.KeyCurrentScreen)
	assert.True(t, ok)
	assert.Equal(t, "auth", mirrored)
}

func TestInitialScreenWithSurvivingSession(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)

	assert.Equal(t, "card-input", m.CurrentScreen())
}

func TestLoginMovesToCardInput(t *testing.T) {
	m, _ := newTestModel(t, false, `{"data": []}`)

	m.authInputs[fieldEmail].SetValue(auth.DemoEmail)
	m.authInputs[fieldPassword].SetValue(auth.DemoPassword)

	m, _ = pressEnter(t, m)

	assert.Equal(t, "card-input", m.CurrentScreen())
	assert.Empty(t, m.Message())
	// Password field is wiped after a successful submit
	assert.Empty(t, m.authInputs[fieldPassword].Value())
}

func TestLoginFailureStaysOnAuth(t *testing.T) {
	m, _ := newTestModel(t, false, `{"data": []}`)

	m.authInputs[fieldEmail].SetValue(auth.DemoEmail)
	m.authInputs[fieldPassword].SetValue("wrong-password")

	m, _ = pressEnter(t, m)

	assert.Equal(t, "auth", m.CurrentScreen())
	assert.Equal(t, auth.ErrInvalidPassword.Error(), m.Message())
}

func TestSignupFlow(t *testing.T) {
	m, _ := newTestModel(t, false, `{"data": []}`)

	// ctrl+s toggles between login and signup
	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, AuthSignup, m.authMode)

	m.authInputs[fieldName].SetValue("Ann")
	m.authInputs[fieldEmail].SetValue("ann@example.com")
	m.authInputs[fieldPassword].SetValue("abc123")

	m, _ = pressEnter(t, m)

	assert.Equal(t, "card-input", m.CurrentScreen())
}

func TestSignupValidationShownInline(t *testing.T) {
	m, _ := newTestModel(t, false, `{"data": []}`)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m.authInputs[fieldName].SetValue("Ann")
	m.authInputs[fieldEmail].SetValue("ann@example.com")
	m.authInputs[fieldPassword].SetValue("abc12")

	m, _ = pressEnter(t, m)

	assert.Equal(t, "auth", m.CurrentScreen())
	assert.Contains(t, m.Message(), "at least 6 characters")
}

func TestCardInputRequiresNameAndSet(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)

	m.cardInputs[fieldCardName].SetValue("Charizard")

	m, _ = pressEnter(t, m)

	assert.Equal(t, "card-input", m.CurrentScreen())
	assert.Equal(t, "Card name and set are required", m.Message())
}

func TestCardInputMovesToConfirmation(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)

	m.cardInputs[fieldCardName].SetValue("Charizard")
	m.cardInputs[fieldCardSet].SetValue("Base Set")
	m.cardInputs[fieldCardNumber].SetValue("4")

	m, _ = pressEnter(t, m)

	assert.Equal(t, "confirmation", m.CurrentScreen())
	assert.Equal(t, "Charizard", m.descriptor.Name)
	assert.Equal(t, "Base Set", m.descriptor.Set)
	assert.Equal(t, model.ConditionNearMint, m.descriptor.Condition)

	// The descriptor is mirrored into the scratch store
	raw, ok := m.scratch.Get(storage.KeyCardData)
	assert.True(t, ok)
	assert.Contains(t, raw, "Charizard")

	prev, _ := m.scratch.Get(storage.KeyPreviousScreen)
	assert.Equal(t, "card-input", prev)
}

func TestConditionPickerCycles(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)

	// tab down to the condition row
	for i := 0; i < 3; i++ {
		m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, fieldCondition, m.cardFocus)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.ConditionLightlyPlayed, model.Conditions[m.condIdx])

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.ConditionModeratelyPlayed, model.Conditions[m.condIdx])

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.ConditionNearMint, model.Conditions[m.condIdx])

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, model.ConditionModeratelyPlayed, model.Conditions[m.condIdx])
}

func toConfirmation(t *testing.T, m Model) Model {
	t.Helper()

	m.cardInputs[fieldCardName].SetValue("Charizard")
	m.cardInputs[fieldCardSet].SetValue("Base Set")
	m, _ = pressEnter(t, m)
	require.Equal(t, "confirmation", m.CurrentScreen())
	return m
}

func TestConfirmationDeclineReturnsToCardInput(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)

	m, _ = pressRune(t, m, 'n')
	assert.Equal(t, "card-input", m.CurrentScreen())
}

func TestConfirmationAcceptStartsSearch(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)

	m, cmd := pressRune(t, m, 'y')

	assert.Equal(t, "loading", m.CurrentScreen())
	assert.True(t, m.searching)
	assert.NotNil(t, cmd)
}

func TestSecondTriggerWhileSearchingIsSilentNoOp(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)

	m, _ = pressRune(t, m, 'y')
	require.True(t, m.searching)

	next, cmd := m.startSearch()
	got := next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, "loading", got.CurrentScreen())
	assert.True(t, got.searching)
}

func TestLoadingScreenIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)
	m, _ = pressRune(t, m, 'y')

	m, cmd := pressEnter(t, m)
	assert.Equal(t, "loading", m.CurrentScreen())
	assert.Nil(t, cmd)
}

func TestSessionGuardBlocksSearchDispatch(t *testing.T) {
	m, authStore := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)

	// Session dies between confirmation and dispatch
	require.NoError(t, authStore.Logout())

	m, cmd := pressRune(t, m, 'y')

	assert.Equal(t, "auth", m.CurrentScreen())
	assert.Equal(t, "Please log in first", m.Message())
	assert.False(t, m.searching, "guard redirect must release the single-flight guard")
	assert.Nil(t, cmd)
}

func TestSearchDoneShowsResults(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)
	m, _ = pressRune(t, m, 'y')

	priced := pricing.Enrich(pricing.Synthesize(m.descriptor), m.descriptor.Condition)
	m, _ = pressMsg(t, m, searchDoneMsg{result: priced, fallback: true})

	assert.Equal(t, "results", m.CurrentScreen())
	assert.False(t, m.searching)
	assert.True(t, m.fromLocal)
	require.NotNil(t, m.result)
	assert.Equal(t, "Charizard", m.result.Name)
	assert.Contains(t, m.Message(), "No catalog match")
}

func TestSearchFailedShowsErrorScreen(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)
	m, _ = pressRune(t, m, 'y')

	m, _ = pressMsg(t, m, searchFailedMsg{err: errors.New("nothing to search for")})

	assert.Equal(t, "error", m.CurrentScreen())
	assert.Equal(t, "nothing to search for", m.errText)
	assert.False(t, m.searching, "failure must release the single-flight guard")
}

func TestErrorScreenRetry(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)
	m, _ = pressRune(t, m, 'y')
	m, _ = pressMsg(t, m, searchFailedMsg{err: errors.New("boom")})

	m, cmd := pressRune(t, m, 'r')

	assert.Equal(t, "loading", m.CurrentScreen())
	assert.True(t, m.searching)
	assert.NotNil(t, cmd)
}

func TestResultsNewSearchReturnsToCardInput(t *testing.T) {
	m, _ := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)
	m, _ = pressRune(t, m, 'y')

	priced := pricing.Enrich(pricing.Synthesize(m.descriptor), m.descriptor.Condition)
	m, _ = pressMsg(t, m, searchDoneMsg{result: priced})

	m, _ = pressRune(t, m, 'n')
	assert.Equal(t, "card-input", m.CurrentScreen())
}

func TestLogoutFromAnyScreen(t *testing.T) {
	m, authStore := newTestModel(t, true, `{"data": []}`)
	m = toConfirmation(t, m)

	m, _ = pressKey(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.Equal(t, "auth", m.CurrentScreen())
	assert.Equal(t, "Logged out", m.Message())
	assert.False(t, authStore.IsLoggedIn())
	assert.Nil(t, m.result)
}

func TestSearchCmdFallsBackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	lookup := catalog.NewService(catalog.NewClient(srv.URL), time.Hour)

	desc := model.CardDescriptor{Name: "Charizard", Set: "Base Set", Condition: model.ConditionNearMint}
	msg := searchCmd(lookup, desc)()

	done, ok := msg.(searchDoneMsg)
	require.True(t, ok, "transport failure settles into a fallback result, not an error")
	assert.True(t, done.fallback)
	assert.Equal(t, "Charizard", done.result.Name)
	assert.Equal(t, pricing.MockPrice("Charizard"), done.result.BasePrice)
}

func TestSearchCmdFallsBackOnEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)
	lookup := catalog.NewService(catalog.NewClient(srv.URL), time.Hour)

	desc := model.CardDescriptor{Name: "Snorlax", Set: "Jungle", Condition: model.ConditionLightlyPlayed}
	msg := searchCmd(lookup, desc)()

	done, ok := msg.(searchDoneMsg)
	require.True(t, ok)
	assert.True(t, done.fallback)
	assert.Equal(t, model.ConditionLightlyPlayed, done.result.SelectedCondition)
}

func TestSearchCmdUsesCatalogMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{
			"id": "base1-4", "name": "Charizard", "number": "4",
			"set": {"id": "base1", "name": "Base Set"},
			"tcgplayer": {"prices": {"holofoil": {"market": 299.99}}}
		}]}`))
	}))
	t.Cleanup(srv.Close)
	lookup := catalog.NewService(catalog.NewClient(srv.URL), time.Hour)

	desc := model.CardDescriptor{Name: "Charizard", Set: "Base Set", Condition: model.ConditionNearMint}
	msg := searchCmd(lookup, desc)()

	done, ok := msg.(searchDoneMsg)
	require.True(t, ok)
	assert.False(t, done.fallback)
	assert.Equal(t, 299.99, done.result.BasePrice)
	assert.Equal(t, done.result.BasePrice, done.result.AdjustedPrice)
}

func TestSearchCmdRejectsEmptyName(t *testing.T) {
	lookup := catalog.NewService(catalog.NewClient("http://localhost:0"), time.Hour)

	msg := searchCmd(lookup, model.CardDescriptor{})()

	_, ok := msg.(searchFailedMsg)
	assert.True(t, ok)
}

func pressMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got, cmd
}
