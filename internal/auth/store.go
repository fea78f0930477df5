// Package auth owns the credential records and the single active session.
// Credentials live as a JSON array under one durable key, the session as a
// JSON blob under another, both in the local sqlite kv store.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gookit/validate"
	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/cardscout/internal/logger"
	"github.com/existflow/cardscout/internal/model"
	"github.com/existflow/cardscout/internal/storage"
)

// Seeded demo account, present from first open
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
	DemoName     = "Demo User"
)

// Store performs signup, login and session management on top of the kv store
type Store struct {
	kv *storage.Store
}

// NewStore creates the auth store and seeds the demo account when the
// credential list does not exist yet.
func NewStore(kv *storage.Store) (*Store, error) {
	s := &Store{kv: kv}

	_, ok, err := kv.Get(storage.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.seedDemoAccount(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) seedDemoAccount() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	users := []model.Credential{{
		ID:       uuid.New().String(),
		Name:     DemoName,
		Email:    DemoEmail,
		Password: string(hash),
	}}

	logger.Info("Seeding demo account", logger.F("email", DemoEmail))
	return s.saveUsers(users)
}

func (s *Store) loadUsers() ([]model.Credential, error) {
	raw, ok, err := s.kv.Get(storage.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var users []model.Credential
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("failed to decode credential records: %w", err)
	}
	return users, nil
}

func (s *Store) saveUsers(users []model.Credential) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode credential records: %w", err)
	}
	return s.kv.Set(storage.KeyUsers, string(data))
}

// signupInput carries the validation rules for new accounts
type signupInput struct {
	Name     string `validate:"required" message:"required:name is required"`
	Email    string `validate:"required|email" message:"required:email is required|email:email is not valid"`
	Password string `validate:"required|minLen:6" message:"required:password is required|minLen:password must be at least 6 characters"`
}

// Signup validates the input, appends a credential record and logs the new
// account in. The email must not already be registered.
func (s *Store) Signup(name, email, password string) (*model.Session, error) {
	in := signupInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}

	v := validate.Struct(&in)
	if !v.Validate() {
		return nil, &ValidationError{Message: v.Errors.One()}
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, in.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := model.Credential{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.saveUsers(append(users, cred)); err != nil {
		return nil, err
	}

	logger.Info("Account created", logger.F("email", cred.Email))

	// Signup logs the user straight in
	return s.createSession(cred)
}

// Login verifies the credentials and replaces the active session
func (s *Store) Login(email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, ErrInvalidPassword
		}
		return s.createSession(u)
	}

	return nil, ErrUserNotFound
}

// createSession overwrites any previous session record
func (s *Store) createSession(cred model.Credential) (*model.Session, error) {
	sess := &model.Session{
		ID:        cred.ID,
		Name:      cred.Name,
		Email:     cred.Email,
		LoginTime: time.Now(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(storage.KeySession, string(data)); err != nil {
		return nil, err
	}

	logger.Info("Session started", logger.F("email", sess.Email))
	return sess, nil
}

// Logout removes the active session. Logging out twice is fine.
func (s *Store) Logout() error {
	return s.kv.Delete(storage.KeySession)
}

// Current returns the active session, or nil when logged out
func (s *Store) Current() (*model.Session, error) {
	raw, ok, err := s.kv.Get(storage.KeySession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// IsLoggedIn returns true iff an active session record exists
func (s *Store) IsLoggedIn() bool {
	sess, err := s.Current()
	return err == nil && sess != nil
}

// Profile resolves the active session against the stored credentials.
// ok is false when there is no session or the session is orphaned.
func (s *Store) Profile() (cred *model.Credential, ok bool, err error) {
	sess, err := s.Current()
	if err != nil || sess == nil {
		return nil, false, err
	}

	users, err := s.loadUsers()
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].ID == sess.ID {
			return &users[i], true, nil
		}
	}

	// Orphaned session: record exists but its credential is gone
	return nil, false, nil
}
