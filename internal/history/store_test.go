package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/HendryAvila/imc/internal/imc"
	"github.com/HendryAvila/imc/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newTestStore creates a mounted Store over an in-memory backend with
// predictable IDs ("rec-1", "rec-2", ...).
func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	backend := storage.NewMemory()
	s := New(backend, WithLogger(zaptest.NewLogger(t)), WithIDGenerator(counterIDs()))
	s.Load()
	return s, backend
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func fields(name string, weight, height float64) Fields {
	return Fields{Name: name, Weight: Float(weight), Height: Float(height)}
}

// fixedNow pins the default record date for the duration of a test.
func fixedNow(t *testing.T, day string) {
	t.Helper()
	ts, err := time.Parse(DateLayout, day)
	require.NoError(t, err)
	orig := timeNow
	timeNow = func() time.Time { return ts }
	t.Cleanup(func() { timeNow = orig })
}

// failingBackend accepts reads but rejects every write.
type failingBackend struct {
	*storage.Memory
}

func (f failingBackend) Put(string, []byte) error { return errors.New("disk full") }

// ─── Load ───────────────────────────────────────────────────────────────────

func TestLoad_EmptyBackend(t *testing.T) {
	s := New(storage.NewMemory())
	assert.Empty(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestLoad_MalformedBlobIsEmpty(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(DefaultKey, []byte("{not json")))

	s := New(backend, WithLogger(zaptest.NewLogger(t)))
	assert.Empty(t, s.Load())
}

func TestLoad_WrongShapeIsEmpty(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(DefaultKey, []byte(`{"id":"x"}`)))

	s := New(backend)
	assert.Empty(t, s.Load())
}

func TestLoad_NullBlobIsEmpty(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Put(DefaultKey, []byte("null")))

	s := New(backend)
	assert.Empty(t, s.Load())
}

func TestLoad_UsesConfiguredKey(t *testing.T) {
	backend := storage.NewMemory()
	a := New(backend, WithKey("a"), WithIDGenerator(counterIDs()))
	a.Load()
	_, err := a.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	b := New(backend, WithKey("b"))
	assert.Empty(t, b.Load())
	assert.Equal(t, "b", b.Key())

	again := New(backend, WithKey("a"))
	assert.Len(t, again.Load(), 1)
}

func TestLoad_RoundTrip(t *testing.T) {
	fixedNow(t, "2026-10-19")
	s, backend := newTestStore(t)

	created, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	reloaded := New(backend).Load()
	require.Len(t, reloaded, 1)
	if diff := cmp.Diff(created, reloaded[0]); diff != "" {
		t.Errorf("reloaded record mismatch (-created +reloaded):\n%s", diff)
	}

	want := Record{Name: "Ana", Weight: 70, Height: 1.75, IMC: 70 / (1.75 * 1.75)}
	ignore := cmpopts.IgnoreFields(Record{}, "ID", "Date", "Category")
	if diff := cmp.Diff(want, reloaded[0], ignore); diff != "" {
		t.Errorf("record fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PersistedLayoutIsJSONArray(t *testing.T) {
	fixedNow(t, "2026-10-19")
	s, backend := newTestStore(t)
	_, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	data, err := backend.Get(DefaultKey)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	for _, key := range []string{"id", "name", "weight", "height", "imc", "date", "category"} {
		assert.Contains(t, raw[0], key)
	}
	assert.Equal(t, "2026-10-19", raw[0]["date"])
	assert.Equal(t, "Peso Normal", raw[0]["category"])
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestCreate_ScenarioAna(t *testing.T) {
	s, _ := newTestStore(t)

	rec, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	assert.InDelta(t, 22.857142857, rec.IMC, 1e-9)
	assert.Equal(t, "Peso Normal", rec.Category)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "Ana", rec.Name)
}

func TestCreate_ScenarioObesityIII(t *testing.T) {
	s, _ := newTestStore(t)

	rec, err := s.Create(fields("Bruno", 150, 1.5))
	require.NoError(t, err)

	assert.InDelta(t, 66.67, rec.IMC, 0.005)
	assert.Equal(t, "Obesidade Grau III", rec.Category)
}

func TestCreate_PrependsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(fields("first", 70, 1.75))
	require.NoError(t, err)
	_, err = s.Create(fields("second", 80, 1.80))
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
}

func TestCreate_DefaultsDateToToday(t *testing.T) {
	fixedNow(t, "2025-07-28")
	s, _ := newTestStore(t)

	rec, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)
	assert.Equal(t, "2025-07-28", rec.Date)
}

func TestCreate_KeepsSelectedDate(t *testing.T) {
	s, _ := newTestStore(t)

	f := fields("Ana", 70, 1.75)
	f.Date = "2024-02-29"
	rec, err := s.Create(f)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", rec.Date)
}

func TestCreate_RecomputesSuppliedIMC(t *testing.T) {
	s, _ := newTestStore(t)

	f := fields("Ana", 70, 1.75)
	f.IMC = Float(99)
	rec, err := s.Create(f)
	require.NoError(t, err)
	assert.InDelta(t, 70/(1.75*1.75), rec.IMC, 1e-9)
	assert.Equal(t, "Peso Normal", rec.Category)
}

func TestCreate_RejectsMissingOrInvalid(t *testing.T) {
	tests := []struct {
		name  string
		f     Fields
		parse bool
	}{
		{"missing name", Fields{Weight: Float(70), Height: Float(1.75)}, false},
		{"blank name", Fields{Name: "   ", Weight: Float(70), Height: Float(1.75)}, false},
		{"missing weight", Fields{Name: "Ana", Height: Float(1.75)}, false},
		{"missing height", Fields{Name: "Ana", Weight: Float(70)}, false},
		{"weight out of range", fields("Ana", 301, 1.75), false},
		{"height out of range", fields("Ana", 70, 0.2), false},
		{"zero height", fields("Ana", 70, 0), false},
		{"bad date", Fields{Name: "Ana", Weight: Float(70), Height: Float(1.75), Date: "28/07/2025"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newTestStore(t)

			_, err := s.Create(tt.f)
			require.Error(t, err)
			assert.ErrorIs(t, err, imc.ErrValidation)
			assert.Equal(t, tt.parse, errors.Is(err, imc.ErrParse))

			assert.Equal(t, 0, s.Len())
			_, getErr := backend.Get(DefaultKey)
			assert.ErrorIs(t, getErr, storage.ErrNotFound, "nothing should have been persisted")
		})
	}
}

func TestCreate_SkipsDuplicateIDs(t *testing.T) {
	ids := []string{"same", "same", "other"}
	i := 0
	s := New(storage.NewMemory(), WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))
	s.Load()

	a, err := s.Create(fields("a", 70, 1.75))
	require.NoError(t, err)
	b, err := s.Create(fields("b", 70, 1.75))
	require.NoError(t, err)

	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestCreate_DefaultIDsAreUnique(t *testing.T) {
	s := New(storage.NewMemory())
	s.Load()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec, err := s.Create(fields("x", 70, 1.75))
		require.NoError(t, err)
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestCreate_PersistFailureLeavesStateUnchanged(t *testing.T) {
	s := New(failingBackend{storage.NewMemory()})
	s.Load()

	_, err := s.Create(fields("Ana", 70, 1.75))
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

// ─── Update ─────────────────────────────────────────────────────────────────

func TestUpdate_ReplacesInPlace(t *testing.T) {
	s, backend := newTestStore(t)
	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Create(fields(n, 70, 1.75))
		require.NoError(t, err)
	}
	// Order is c, b, a; edit the middle one.
	before := s.List()
	target := before[1]

	updated, err := s.Update(target.ID, fields("b2", 95, 1.75))
	require.NoError(t, err)

	after := s.List()
	require.Len(t, after, len(before))
	assert.Equal(t, target.ID, after[1].ID)
	assert.Equal(t, "b2", after[1].Name)
	assert.Equal(t, updated, after[1])
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	// Recomputed: 95 / 1.75² ≈ 31.0
	assert.InDelta(t, 95/(1.75*1.75), updated.IMC, 1e-9)
	assert.Equal(t, "Obesidade Grau I", updated.Category)

	reloaded := New(backend).Load()
	assert.Equal(t, after, reloaded)
}

func TestUpdate_KeepsDateWhenUnset(t *testing.T) {
	s, _ := newTestStore(t)
	f := fields("Ana", 70, 1.75)
	f.Date = "2025-01-01"
	rec, err := s.Create(f)
	require.NoError(t, err)

	updated, err := s.Update(rec.ID, fields("Ana", 72, 1.75))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", updated.Date)

	f.Date = "2025-02-01"
	updated, err = s.Update(rec.ID, f)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", updated.Date)
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	_, err = s.Update("missing", fields("x", 70, 1.75))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)
	assert.Equal(t, "Ana", s.List()[0].Name)
}

func TestUpdate_InvalidFieldsLeaveRecord(t *testing.T) {
	s, _ := newTestStore(t)
	rec, err := s.Create(fields("Ana", 70, 1.75))
	require.NoError(t, err)

	_, err = s.Update(rec.ID, fields("Ana", 10, 1.75))
	assert.ErrorIs(t, err, imc.ErrValidation)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

// ─── Delete ─────────────────────────────────────────────────────────────────

func TestDelete_RemovesOnlyTarget(t *testing.T) {
	s, backend := newTestStore(t)
	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Create(fields(n, 70, 1.75))
		require.NoError(t, err)
	}
	before := s.List()

	require.NoError(t, s.Delete(before[1].ID))

	after := s.List()
	require.Len(t, after, 2)
	assert.Equal(t, []Record{before[0], before[2]}, after)
	assert.Equal(t, after, New(backend).Load())
}

func TestDelete_NotFoundLeavesList(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(fields("a", 70, 1.75))
	require.NoError(t, err)

	err = s.Delete("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestDelete_PersistFailureLeavesStateUnchanged(t *testing.T) {
	mem := storage.NewMemory()
	seed := New(mem, WithIDGenerator(counterIDs()))
	seed.Load()
	rec, err := seed.Create(fields("a", 70, 1.75))
	require.NoError(t, err)

	s := New(failingBackend{mem})
	s.Load()
	require.Error(t, s.Delete(rec.ID))
	assert.Equal(t, 1, s.Len())
}

// ─── Search ─────────────────────────────────────────────────────────────────

func TestSearch_ByCategoryCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(fields("Ana", 70, 1.75)) // Peso Normal
	require.NoError(t, err)
	_, err = s.Create(fields("Caio", 85, 1.75)) // Sobrepeso
	require.NoError(t, err)

	got := s.Search("normal")
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Peso Normal", got[0].Category)
}

func TestSearch_ByName(t *testing.T) {
	s, _ := newTestStore(t)
	for _, n := range []string{"Ana Maria", "João", "mariana"} {
		_, err := s.Create(fields(n, 70, 1.75))
		require.NoError(t, err)
	}

	got := s.Search("MARIA")
	require.Len(t, got, 2)
	// Collection order (newest first) is preserved.
	assert.Equal(t, "mariana", got[0].Name)
	assert.Equal(t, "Ana Maria", got[1].Name)

	got = s.Search("joão")
	require.Len(t, got, 1)
}

func TestSearch_EmptyTermReturnsAll(t *testing.T) {
	s, _ := newTestStore(t)
	for _, n := range []string{"a", "b"} {
		_, err := s.Create(fields(n, 70, 1.75))
		require.NoError(t, err)
	}
	assert.Len(t, s.Search(""), 2)
	assert.Len(t, s.Search("   "), 2)
	assert.Empty(t, s.Search("zzz"))
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

func TestAverageIMC(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, 0.0, s.AverageIMC())

	// 20.0 and 30.0 exactly: h = 2 → w = 80 and 120.
	_, err := s.Create(fields("a", 80, 2))
	require.NoError(t, err)
	_, err = s.Create(fields("b", 120, 2))
	require.NoError(t, err)

	assert.InDelta(t, 25.0, s.AverageIMC(), 1e-9)
}

func TestSummary(t *testing.T) {
	s, _ := newTestStore(t)

	empty := s.Summary()
	assert.Equal(t, 0, empty.Count)
	assert.Empty(t, empty.AverageCategory)
	assert.Len(t, empty.ByCategory, 6)

	_, err := s.Create(fields("a", 80, 2)) // 20 → Peso Normal
	require.NoError(t, err)
	_, err = s.Create(fields("b", 120, 2)) // 30 → Obesidade Grau I
	require.NoError(t, err)

	sum := s.Summary()
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 25.0, sum.AverageIMC, 1e-9)
	assert.Equal(t, imc.Overweight, sum.AverageCategory)

	counts := map[string]int{}
	for _, c := range sum.ByCategory {
		counts[c.Category] = c.Count
	}
	assert.Equal(t, 1, counts[imc.Normal])
	assert.Equal(t, 1, counts[imc.ObesityI])
	assert.Equal(t, 0, counts[imc.Underweight])
	assert.Equal(t, imc.Underweight, sum.ByCategory[0].Category)
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create(fields("a", 70, 1.75))
	require.NoError(t, err)

	list := s.List()
	list[0].Name = "mutated"
	assert.Equal(t, "a", s.List()[0].Name)
}

func TestRecord_Classification(t *testing.T) {
	r := Record{IMC: 25}
	assert.Equal(t, imc.Overweight, r.Classification().Name)
}
