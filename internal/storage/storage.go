package storage

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Storage keys
const (
	keyPreferences = "preferences"
	gameKeyPrefix  = "game:"
)

// ErrGameNotFound is returned when loading a saved game that does not exist.
var ErrGameNotFound = errors.New("saved game not found")

// SavedGame is a snapshot of a game: the position it was loaded from and
// every move played since.
type SavedGame struct {
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	Moves   []string  `json:"moves"`
	Result  string    `json:"result"`
	SavedAt time.Time `json:"saved_at"`
}

// Preferences stores engine settings that survive restarts.
type Preferences struct {
	HashSizeMB  int           `json:"hash_size_mb"`
	SearchDepth int           `json:"search_depth"`
	MoveTime    time.Duration `json:"move_time"`
}

// DefaultPreferences returns the engine defaults.
func DefaultPreferences() *Preferences {
	return &Preferences{
		HashSizeMB:  16,
		SearchDepth: 5,
	}
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store at %s", dir)
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Storage, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame stores a game snapshot under its name, overwriting any previous
// save with the same name.
func (s *Storage) SaveGame(g *SavedGame) error {
	if g.Name == "" {
		return errors.New("saved game needs a name")
	}
	g.SavedAt = time.Now()

	data, err := json.Marshal(g)
	if err != nil {
		return errors.Wrap(err, "encode saved game")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(g.Name), data)
	})
}

// LoadGame retrieves a saved game by name.
func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	var g SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(name))
		if err == badger.ErrKeyNotFound {
			return errors.Wrap(ErrGameNotFound, name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// ListGames returns the names of all saved games.
func (s *Storage) ListGames() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, gameKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

// DeleteGame removes a saved game. Deleting a missing game is not an error.
func (s *Storage) DeleteGame(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(name))
	})
}

// SavePreferences saves the engine preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return errors.Wrap(err, "encode preferences")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the engine preferences, falling back to defaults
// when none were saved yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	if err != nil {
		return nil, err
	}

	return prefs, nil
}

func gameKey(name string) []byte {
	return []byte(gameKeyPrefix + name)
}
