package history

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/HendryAvila/imc/internal/imc"
	"github.com/HendryAvila/imc/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "imc-history"

// timeNow is a package-level variable for testability.
// Tests can replace this to control the default record date.
var timeNow = time.Now

// Store owns the in-memory collection and its persistence.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	key     string
	logger  *zap.Logger
	newID   func() string
	records []Record // newest first
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key (default DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates an empty Store over backend. Call Load to mount the
// persisted collection.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// ─── I/O edges ──────────────────────────────────────────────────────────────

// Load reads the persisted collection, replacing whatever is in memory.
// A missing, unreadable or malformed blob yields an empty collection; the
// failure is logged and never returned.
func (s *Store) Load() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.read()
	return cloneRecords(s.records)
}

func (s *Store) read() []Record {
	data, err := s.backend.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("history unreadable, starting empty",
				zap.String("key", s.key), zap.Error(err))
		}
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("history blob malformed, starting empty",
			zap.Error(&DecodeError{Key: s.key, Err: err}))
		return nil
	}

	s.logger.Debug("history loaded", zap.String("key", s.key), zap.Int("records", len(records)))
	return records
}

// save serializes the whole collection. Callers swap s.records only after
// save succeeds, so a failed write leaves memory unchanged.
func (s *Store) save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.backend.Put(s.key, data)
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// Create validates fields, assigns an ID and date, prepends the new record
// and persists the collection.
func (s *Store) Create(f Fields) (Record, error) {
	rec, err := buildRecord(f)
	if err != nil {
		return Record{}, err
	}
	if rec.Date == "" {
		rec.Date = timeNow().Format(DateLayout)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.uniqueID()

	next := make([]Record, 0, len(s.records)+1)
	next = append(next, rec)
	next = append(next, s.records...)
	if err := s.save(next); err != nil {
		return Record{}, err
	}
	s.records = next

	s.logger.Debug("record created", zap.String("id", rec.ID), zap.String("category", rec.Category))
	return rec, nil
}

// Update replaces the record with the given ID in place. The ID and
// position are kept; so is the date when f.Date is empty.
func (s *Store) Update(id string, f Fields) (Record, error) {
	rec, err := buildRecord(f)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Record{}, &NotFoundError{ID: id}
	}

	rec.ID = s.records[i].ID
	if rec.Date == "" {
		rec.Date = s.records[i].Date
	}

	next := cloneRecords(s.records)
	next[i] = rec
	if err := s.save(next); err != nil {
		return Record{}, err
	}
	s.records = next

	s.logger.Debug("record updated", zap.String("id", rec.ID), zap.String("category", rec.Category))
	return rec, nil
}

// Delete removes the record with the given ID. Confirmation is the
// caller's job.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}

	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	if err := s.save(next); err != nil {
		return err
	}
	s.records = next

	s.logger.Debug("record deleted", zap.String("id", id))
	return nil
}

// ─── Queries ────────────────────────────────────────────────────────────────

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Record{}, &NotFoundError{ID: id}
	}
	return s.records[i], nil
}

// List returns every record, newest first.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.records)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Search returns records whose name or category contains term, ignoring
// case, in collection order. A blank term returns everything.
func (s *Store) Search(term string) []Record {
	term = strings.ToLower(strings.TrimSpace(term))

	s.mu.Lock()
	defer s.mu.Unlock()

	if term == "" {
		return cloneRecords(s.records)
	}

	var out []Record
	for _, r := range s.records {
		if r.matches(term) {
			out = append(out, r)
		}
	}
	return out
}

// AverageIMC is the mean index over all records, 0 when there are none.
func (s *Store) AverageIMC() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return average(s.records)
}

// CategoryCount is the number of records in one bucket.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary aggregates the collection.
type Summary struct {
	Count           int             `json:"count"`
	AverageIMC      float64         `json:"average_imc"`
	AverageCategory string          `json:"average_category,omitempty"` // empty when Count is 0
	ByCategory      []CategoryCount `json:"by_category"`
}

// Summary returns counts per bucket (in table order) and the average index.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(s.records))
	for _, r := range s.records {
		counts[r.Category]++
	}

	cats := imc.Categories()
	by := make([]CategoryCount, 0, len(cats))
	for _, c := range cats {
		by = append(by, CategoryCount{Category: c.Name, Count: counts[c.Name]})
	}

	sum := Summary{
		Count:      len(s.records),
		AverageIMC: average(s.records),
		ByCategory: by,
	}
	if sum.Count > 0 {
		sum.AverageCategory = imc.Classify(sum.AverageIMC).Name
	}
	return sum
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// buildRecord validates f and derives imc and category. ID and default
// date are left to the caller.
func buildRecord(f Fields) (Record, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Record{}, imc.Missing("name")
	}
	if f.Weight == nil {
		return Record{}, imc.Missing("weight")
	}
	if f.Height == nil {
		return Record{}, imc.Missing("height")
	}

	value, err := imc.Compute(*f.Weight, *f.Height)
	if err != nil {
		return Record{}, err
	}

	date := strings.TrimSpace(f.Date)
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Record{}, &imc.ParseError{Field: "date", Value: date, Err: err}
		}
	}

	return Record{
		Name:     name,
		Weight:   *f.Weight,
		Height:   *f.Height,
		IMC:      value,
		Date:     date,
		Category: imc.Classify(value).Name,
	}, nil
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID draws IDs until one is not already in the collection.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func average(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.IMC
	}
	return sum / float64(len(records))
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	copy(out, in)
	return out
}
