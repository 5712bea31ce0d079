// Package session holds the progression state that survives level
// transitions: wallet, keys, books, collected pickups and the PRNG.
package session

import (
	"math"
	"slices"
)

// Book is a registered book and how many of its pages exist.
type Book struct {
	ID    uint16 `json:"id"`
	Pages int    `json:"pages"`
}

// Session is the player's progression state. It is owned by the running
// simulation and passed by pointer into the systems that change it.
type Session struct {
	Coins     uint32              `json:"coins"`
	Keys      []uint16            `json:"keys"`
	Books     map[uint16]Book     `json:"books"`
	Collected map[string][]uint16 `json:"collected"` // level path -> pickup trigger ids
	Level     string              `json:"level"`
	Language  string              `json:"language"`
	RNG       Xorshift32          `json:"rng"`
}

// New returns an empty session whose PRNG starts from seed.
func New(seed uint32) *Session {
	return &Session{
		Books:     map[uint16]Book{},
		Collected: map[string][]uint16{},
		RNG:       NewXorshift32(seed),
	}
}

// AddCoins adds n coins, saturating at the wallet maximum.
func (s *Session) AddCoins(n uint32) {
	if n > math.MaxUint32-s.Coins {
		s.Coins = math.MaxUint32
		return
	}
	s.Coins += n
}

// AddKey records a key id. It reports false when the key was already held.
func (s *Session) AddKey(id uint16) bool {
	i, found := slices.BinarySearch(s.Keys, id)
	if found {
		return false
	}
	s.Keys = slices.Insert(s.Keys, i, id)
	return true
}

func (s *Session) HasKey(id uint16) bool {
	_, found := slices.BinarySearch(s.Keys, id)
	return found
}

// AddBook registers a book. A book that is already registered keeps its
// page count.
func (s *Session) AddBook(id uint16, pages int) bool {
	if s.Books == nil {
		s.Books = map[uint16]Book{}
	}
	if _, ok := s.Books[id]; ok {
		return false
	}
	s.Books[id] = Book{ID: id, Pages: pages}
	return true
}

// MarkCollected remembers that a one-shot pickup in a level was taken.
func (s *Session) MarkCollected(level string, triggerID uint16) {
	if s.Collected == nil {
		s.Collected = map[string][]uint16{}
	}
	ids := s.Collected[level]
	i, found := slices.BinarySearch(ids, triggerID)
	if found {
		return
	}
	s.Collected[level] = slices.Insert(ids, i, triggerID)
}

func (s *Session) IsCollected(level string, triggerID uint16) bool {
	_, found := slices.BinarySearch(s.Collected[level], triggerID)
	return found
}

// CollectedIn returns the collected pickup ids of a level in ascending
// order.
func (s *Session) CollectedIn(level string) []uint16 {
	return s.Collected[level]
}
