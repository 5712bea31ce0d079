package session

import (
	"encoding/json"

	"github.com/samber/oops"
)

// CodeStore is the oops code for save and load failures.
const CodeStore = "SESSION_STORE"

// Store is a key/value blob store. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Load reads a saved session. A missing or empty item yields (nil, nil).
func Load(store Store, key string) (*Session, error) {
	data, err := store.LoadItem(key)
	if err != nil {
		return nil, oops.Code(CodeStore).In("session").With("key", key).Wrapf(err, "load session")
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, oops.Code(CodeStore).In("session").With("key", key).Wrapf(err, "parse saved session")
	}
	if s.Books == nil {
		s.Books = map[uint16]Book{}
	}
	if s.Collected == nil {
		s.Collected = map[string][]uint16{}
	}
	return &s, nil
}

// Save writes the session under key.
func Save(store Store, key string, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return oops.Code(CodeStore).In("session").With("key", key).Wrapf(err, "serialize session")
	}
	if err := store.SaveItem(key, data); err != nil {
		return oops.Code(CodeStore).In("session").With("key", key).Wrapf(err, "save session")
	}
	return nil
}
