// Package packets is the caller-owned side of chunk accumulation: a small
// BoltDB file that collects received wrapper lines keyed by their logical
// message until enough parts are present to reassemble. Re-receiving a chunk
// is a no-op, so radio echoes and repeated relays cost nothing.
package packets

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"

	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
)

const (
	bChunks = "chunks"

	defaultTO = 2 * time.Second

	// partWidth fixes the zero-padded part suffix so a cursor walks chunks
	// in ascending part order.
	partWidth = 8
)

var ErrUnparseableLine = errors.New("packets: line is not a wrapper frame")

// MessageKey derives the stable store key of p's logical message.
func MessageKey(p frame.Packet) string {
	return fmt.Sprintf("%d|%s|%s|%s", p.TemplateID, p.Mode, p.Mode.KID(), p.ID)
}

// MessageRef points at one stored chunk's logical message.
type MessageRef struct {
	Key   string
	Part  int
	Total int
}

// Store is a BoltDB-backed chunk accumulator.
type Store struct {
	db  *bolt.DB
	log zerolog.Logger
}

// Option configures a Store at open time.
type Option func(*Store)

// WithLogger replaces the store's default no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open opens (or creates) the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("packets: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: defaultTO})
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bChunks))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put parses and stores one received line. The first stored content of a
// part wins; re-receiving it reports inserted=false.
func (s *Store) Put(line string) (MessageRef, bool, error) {
	p, ok := frame.Parse(line)
	if !ok {
		return MessageRef{}, false, ErrUnparseableLine
	}

	ref := MessageRef{Key: MessageKey(p), Part: p.Part, Total: p.Total}
	chunkKey := []byte(fmt.Sprintf("%s|%0*d", ref.Key, partWidth, p.Part))

	var inserted bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bChunks))
		if b.Get(chunkKey) != nil {
			return nil
		}
		if err := b.Put(chunkKey, []byte(strings.TrimSpace(line))); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return MessageRef{}, false, err
	}
	s.log.Debug().
		Str("key", ref.Key).
		Int("part", ref.Part).
		Int("total", ref.Total).
		Bool("inserted", inserted).
		Msg("chunk received")
	return ref, inserted, nil
}

// Lines returns the stored chunk lines of one message in ascending part
// order, ready for reassembly.
func (s *Store) Lines(key string) ([]string, error) {
	prefix := []byte(key + "|")
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bChunks)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			out = append(out, string(v))
		}
		return nil
	})
	return out, err
}

// Complete reports whether every part 1..total of the message is present.
func (s *Store) Complete(key string) (bool, error) {
	lines, err := s.Lines(key)
	if err != nil || len(lines) == 0 {
		return false, err
	}
	p, ok := frame.Parse(lines[0])
	if !ok {
		return false, ErrUnparseableLine
	}
	// Stored parts are distinct and each lies in 1..total, so a full count
	// means no gaps.
	return len(lines) == p.Total, nil
}

// Messages lists the distinct message keys known to the store.
func (s *Store) Messages() ([]string, error) {
	var out []string
	err := s.db.View(func(tx *bolt.Tx) error {
		last := ""
		return tx.Bucket([]byte(bChunks)).ForEach(func(k, _ []byte) error {
			key := string(k)
			if i := strings.LastIndexByte(key, '|'); i >= 0 {
				key = key[:i]
			}
			if key != last {
				out = append(out, key)
				last = key
			}
			return nil
		})
	})
	return out, err
}

// Delete drops every chunk of one message.
func (s *Store) Delete(key string) error {
	prefix := []byte(key + "|")
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bChunks))
		c := b.Cursor()
		var keys [][]byte
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
