package storage

// Transient keys, scoped to one program run
const (
	KeyCardData       = "cardData"
	KeyCurrentScreen  = "currentScreen"
	KeyPreviousScreen = "previousScreen"
)

// Scratch is the per-run counterpart of Store: plain in-memory strings that
// vanish when the process exits. The workflow controller mirrors its screen
// and the in-flight card descriptor here.
type Scratch struct {
	values map[string]string
}

// NewScratch creates an empty scratch store
func NewScratch() *Scratch {
	return &Scratch{values: make(map[string]string)}
}

// Get returns the value stored under key and whether it was present
func (s *Scratch) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key
func (s *Scratch) Set(key, value string) {
	s.values[key] = value
}

// Delete removes key
func (s *Scratch) Delete(key string) {
	delete(s.values, key)
}

// Clear removes every key
func (s *Scratch) Clear() {
	s.values = make(map[string]string)
}
