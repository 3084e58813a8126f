package auth

import (
	"encoding/json"
	"os"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/utils"
)

// Store persists the session between invocations of the client, the way the
// web app keeps it in browser local storage. The file holds exactly one
// session; sign-out removes it.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored session, or ErrNoSession when none exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.path, data, 0o600, 0o700)
}

// Clear removes the stored session. Clearing an absent session is not an
// error; sign-out is idempotent.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
