// Package history keeps past searches in a bbolt file and recalls them
// through an in-memory bleve index.
package history

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/adfind/internal/ads"
)

const DefaultLimit = 200

var searchesBucket = []byte("searches")

var ErrClosed = errors.New("history store is closed")

// Entry is one completed search.
type Entry struct {
	Query string    `json:"query"`
	Mode  ads.Mode  `json:"mode"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

func (e Entry) dedupKey() string {
	return strings.ToLower(strings.TrimSpace(e.Query)) + "\x00" + e.Mode.String()
}

type Store struct {
	mu    sync.Mutex
	db    *bolt.DB
	idx   bleve.Index
	limit int
}

// Open opens (or creates) the history file at path. limit <= 0 selects
// DefaultLimit.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(searchesBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history index: %w", err)
	}

	s := &Store{db: db, idx: idx, limit: limit}
	if err := s.reindexAll(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	query := bleve.NewTextFieldMapping()
	query.Analyzer = standard.Name
	query.Store = false

	mode := bleve.NewKeywordFieldMapping()
	mode.Store = false

	dm.AddFieldMappingsAt("query", query)
	dm.AddFieldMappingsAt("mode", mode)

	im.DefaultMapping = dm
	return im
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	idxErr := s.idx.Close()
	dbErr := s.db.Close()
	s.db = nil
	if dbErr != nil {
		return dbErr
	}
	return idxErr
}

// Record appends e and prunes the oldest entries beyond the limit.
func (s *Store) Record(e Entry) error {
	e.Query = strings.TrimSpace(e.Query)
	if e.Query == "" {
		return nil
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	var key []byte
	var pruned [][]byte
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(searchesBucket)
		key = freeKey(b, e.At)
		if err := b.Put(key, data); err != nil {
			return err
		}

		excess := count(b) - s.limit
		c := b.Cursor()
		for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
			pruned = append(pruned, append([]byte(nil), k...))
			if err := c.Delete(); err != nil {
				return err
			}
			excess--
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}

	batch := s.idx.NewBatch()
	if err := batch.Index(docID(key), indexDoc(e)); err != nil {
		return fmt.Errorf("indexing search: %w", err)
	}
	for _, k := range pruned {
		batch.Delete(docID(k))
	}
	if err := s.idx.Batch(batch); err != nil {
		return fmt.Errorf("indexing search: %w", err)
	}
	return nil
}

// freeKey returns the big-endian timestamp key for at, bumped past any
// entry already stored under the same nanosecond.
func freeKey(b *bolt.Bucket, at time.Time) []byte {
	n := uint64(at.UnixNano())
	key := make([]byte, 8)
	for {
		binary.BigEndian.PutUint64(key, n)
		if b.Get(key) == nil {
			return key
		}
		n++
	}
}

func count(b *bolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

func docID(key []byte) string { return hex.EncodeToString(key) }

func indexDoc(e Entry) map[string]any {
	return map[string]any{
		"query": e.Query,
		"mode":  e.Mode.String(),
	}
}

func (s *Store) reindexAll() error {
	batch := s.idx.NewBatch()
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(searchesBucket).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return nil
			}
			return batch.Index(docID(k), indexDoc(e))
		})
	})
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	return s.idx.Batch(batch)
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return 0
	}
	var n int
	_ = s.db.View(func(tx *bolt.Tx) error {
		n = count(tx.Bucket(searchesBucket))
		return nil
	})
	return n
}

// Recent returns up to n entries, newest first, keeping only the latest
// occurrence of each query and mode pair.
func (s *Store) Recent(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	out := []Entry{}
	seen := map[string]bool{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(searchesBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if n > 0 && len(out) >= n {
				break
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			if seen[e.dedupKey()] {
				continue
			}
			seen[e.dedupKey()] = true
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// Find returns past searches whose query matches text by term or prefix.
// Better matches come first, newer ones on ties. Blank text falls back to
// Recent.
func (s *Store) Find(text string, n int) ([]Entry, error) {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return s.Recent(n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qm := bleve.NewMatchQuery(tok)
		qm.SetField("query")
		qm.SetBoost(2.0)
		qs = append(qs, qm)
		qp := bleve.NewPrefixQuery(tok)
		qp.SetField("query")
		qs = append(qs, qp)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), s.limit, 0, false)
	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}

	type hit struct {
		entry Entry
		score float64
	}
	hits := make([]hit, 0, len(res.Hits))
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(searchesBucket)
		for _, h := range res.Hits {
			key, decErr := hex.DecodeString(h.ID)
			if decErr != nil {
				continue
			}
			v := b.Get(key)
			if v == nil {
				continue
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			hits = append(hits, hit{entry: e, score: h.Score})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].entry.At.After(hits[j].entry.At)
	})

	out := []Entry{}
	seen := map[string]bool{}
	for _, h := range hits {
		if n > 0 && len(out) >= n {
			break
		}
		if seen[h.entry.dedupKey()] {
			continue
		}
		seen[h.entry.dedupKey()] = true
		out = append(out, h.entry)
	}
	return out, nil
}
