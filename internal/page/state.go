// ABOUTME: Widget state passed into each rerun
// ABOUTME: Holds string widget values and uploaded files keyed by widget key

package page

import (
	"regexp"
	"strings"
)

// Upload is a file supplied through a file uploader widget.
type Upload struct {
	Name string
	Data []byte
}

// State is the host-owned key-value store of widget values for one session.
type State struct {
	Values  map[string]string
	Uploads map[string]*Upload
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		Values:  make(map[string]string),
		Uploads: make(map[string]*Upload),
	}
}

// Value returns the stored value for key.
func (s *State) Value(key string) (string, bool) {
	if s == nil || s.Values == nil {
		return "", false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Upload returns the stored upload for key, or nil.
func (s *State) Upload(key string) *Upload {
	if s == nil || s.Uploads == nil {
		return nil
	}
	return s.Uploads[key]
}

var nonKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// Key derives a widget key from its label.
func Key(label string) string {
	k := nonKeyChars.ReplaceAllString(strings.ToLower(label), "_")
	return strings.Trim(k, "_")
}
