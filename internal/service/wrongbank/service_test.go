package wrongbank

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

// mockStore keeps blobs in memory unless a func field overrides a method.
type mockStore struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, blob []byte) error

	mu       sync.Mutex
	data     map[string][]byte
	setCalls int
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *mockStore) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	m.setCalls++
	m.mu.Unlock()
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, blob)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

func (m *mockStore) SetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

// mockCodec round-trips a sheet through JSON instead of a real spreadsheet.
type mockCodec struct {
	DecodeFunc func(name string, data []byte) ([]domain.Row, error)
}

type mockSheet struct {
	Header  []string   `json:"header"`
	Records [][]string `json:"records"`
}

func (m *mockCodec) Encode(_ domain.ExportFormat, header []string, records [][]string) ([]byte, error) {
	return json.Marshal(mockSheet{Header: header, Records: records})
}

func (m *mockCodec) Decode(name string, data []byte) ([]domain.Row, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(name, data)
	}
	var s mockSheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	rows := make([]domain.Row, len(s.Records))
	for i, rec := range s.Records {
		rows[i] = domain.Row{}
		for j, h := range s.Header {
			rows[i][strings.ToLower(strings.TrimSpace(h))] = rec[j]
		}
	}
	return rows, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, 2, 15, 16, 30, 0, 0, time.UTC)

func newTestBank(t *testing.T, store *mockStore) *Bank {
	t.Helper()
	b := NewBank(slog.New(slog.NewTextHandler(io.Discard, nil)), store, &mockCodec{}, Config{
		Key:        "wrongBank",
		ExportZone: ParseExportZone("Asia/Seoul"),
	})
	b.now = func() time.Time { return fixedNow }
	return b
}

func respectQ() domain.Question {
	return domain.Question{Word: "Respect", DayKey: "1", Noun: []string{"존경", "면"}}
}

// ---------------------------------------------------------------------------
// MergeMiss
// ---------------------------------------------------------------------------

func TestMergeMiss_NewEntry(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)

	e, err := b.MergeMiss(context.Background(), respectQ())
	require.NoError(t, err)

	assert.Equal(t, "1respect", e.ID)
	assert.Equal(t, "Respect", e.Word)
	assert.Equal(t, "(명) 존경 / 면", e.MeaningText)
	assert.Equal(t, 1, e.Wrong)
	assert.Equal(t, 0, e.Seen)
	assert.True(t, e.AddedAt.Equal(fixedNow))
	assert.Equal(t, 1, store.SetCalls())
}

func TestMergeMiss_TwiceSameIdentity(t *testing.T) {
	t.Parallel()

	b := newTestBank(t, &mockStore{})
	ctx := context.Background()

	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	b.now = func() time.Time { return fixedNow.Add(time.Hour) }
	q := respectQ()
	q.Word = "RESPECT"
	q.Verb = []string{"존경하다"}
	e, err := b.MergeMiss(ctx, q)
	require.NoError(t, err)

	require.Equal(t, 1, b.Len())
	assert.Equal(t, 2, e.Wrong)
	assert.Equal(t, "Respect", e.Word, "identity fields are kept")
	assert.True(t, e.AddedAt.Equal(fixedNow), "addedAt is never updated")
	assert.Equal(t, "(명) 존경 / 면 · (동) 존경하다", e.MeaningText)
}

func TestMergeMiss_DifferentDaysAreDistinct(t *testing.T) {
	t.Parallel()

	b := newTestBank(t, &mockStore{})
	ctx := context.Background()

	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)
	q := respectQ()
	q.DayKey = "2"
	_, err = b.MergeMiss(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Len())
}

func TestMergeMiss_StoreFailureRollsBack(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)
	ctx := context.Background()

	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	boom := errors.New("disk full")
	store.SetFunc = func(context.Context, string, []byte) error { return boom }

	_, err = b.MergeMiss(ctx, respectQ())
	require.ErrorIs(t, err, boom)

	e, ok := b.Get("1respect")
	require.True(t, ok)
	assert.Equal(t, 1, e.Wrong)

	q := respectQ()
	q.Word = "new"
	_, err = b.MergeMiss(ctx, q)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, b.Len())
}

func TestRecordMiss_PersistsSnapshot(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)

	require.NoError(t, b.RecordMiss(context.Background(), respectQ()))

	var stored []map[string]any
	require.NoError(t, json.Unmarshal(store.data["wrongBank"], &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "1respect", stored[0]["id"])
	assert.Equal(t, "1", stored[0]["dayKey"])
	assert.Equal(t, float64(fixedNow.UnixMilli()), stored[0]["addedAt"])
	assert.Equal(t, float64(1), stored[0]["wrong"])
	assert.Equal(t, float64(0), stored[0]["seen"])
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	valid := `[{"id":"1respect","word":"Respect","dayKey":"1","meaningText":"(명) 존경","addedAt":1708014600000,"seen":0,"wrong":3},` +
		`{"id":"dup","word":"respect","dayKey":"1","meaningText":"","addedAt":0,"seen":0,"wrong":1},` +
		`{"id":"x","word":"","dayKey":"1"}]`

	tests := []struct {
		name          string
		data          map[string][]byte
		wantLen       int
		wantRecovered bool
	}{
		{name: "absent", data: nil, wantLen: 0},
		{name: "empty blob", data: map[string][]byte{"wrongBank": {}}, wantLen: 0},
		{name: "corrupt", data: map[string][]byte{"wrongBank": []byte("{not json")}, wantLen: 0, wantRecovered: true},
		{name: "wrong shape", data: map[string][]byte{"wrongBank": []byte(`{"a":1}`)}, wantLen: 0, wantRecovered: true},
		{name: "valid with duplicates and invalid rows", data: map[string][]byte{"wrongBank": []byte(valid)}, wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBank(t, &mockStore{data: tt.data})

			require.NoError(t, b.Load(context.Background()))
			assert.Equal(t, tt.wantLen, b.Len())
			assert.Equal(t, tt.wantRecovered, b.Recovered())
		})
	}
}

func TestLoad_RestoresFields(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	first := newTestBank(t, store)
	_, err := first.MergeMiss(context.Background(), respectQ())
	require.NoError(t, err)

	second := newTestBank(t, store)
	require.NoError(t, second.Load(context.Background()))

	e, ok := second.Get("1respect")
	require.True(t, ok)
	assert.Equal(t, "Respect", e.Word)
	assert.Equal(t, 1, e.Wrong)
	assert.True(t, e.AddedAt.Equal(fixedNow))
}

func TestLoad_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	b := newTestBank(t, &mockStore{
		GetFunc: func(context.Context, string) ([]byte, bool, error) { return nil, false, boom },
	})

	require.ErrorIs(t, b.Load(context.Background()), boom)
}

// ---------------------------------------------------------------------------
// Remove / Clear
// ---------------------------------------------------------------------------

func TestRemove(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)
	ctx := context.Background()
	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	removed, err := b.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, store.SetCalls(), "no-op remove does not write")

	removed, err = b.Remove(ctx, "1respect")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, b.Len())
	assert.Equal(t, "[]", string(store.data["wrongBank"]))
}

func TestClear(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)
	ctx := context.Background()
	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	require.ErrorIs(t, b.Clear(ctx, false), domain.ErrConfirmationRequired)
	assert.Equal(t, 1, b.Len())

	require.NoError(t, b.Clear(ctx, true))
	assert.Zero(t, b.Len())
	assert.Equal(t, "[]", string(store.data["wrongBank"]))
}

// ---------------------------------------------------------------------------
// MergeImportedRows / Import / Export
// ---------------------------------------------------------------------------

func TestMergeImportedRows(t *testing.T) {
	t.Parallel()

	b := newTestBank(t, &mockStore{})
	ctx := context.Background()
	_, err := b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	report, err := b.MergeImportedRows(ctx, []domain.BankRow{
		{DayKey: "1", Word: "respect", MeaningText: "(명) 존경"},
		{DayKey: "2", Word: "apple", MeaningText: "사과"},
		{DayKey: "2", Word: "Apple", MeaningText: "사과"},
		{DayKey: "", Word: "orphan"},
		{DayKey: "3", Word: " "},
	})
	require.NoError(t, err)

	assert.Equal(t, ImportReport{Imported: 1, Merged: 2, Skipped: 2}, report)
	require.Equal(t, 2, b.Len())

	e, _ := b.Get("1respect")
	assert.Equal(t, 2, e.Wrong)
	assert.Equal(t, "(명) 존경", e.MeaningText)
	apple, _ := b.Get("2apple")
	assert.Equal(t, 2, apple.Wrong)
}

func TestMergeImportedRows_NoUsableRows(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	b := newTestBank(t, store)

	report, err := b.MergeImportedRows(context.Background(), []domain.BankRow{{Word: "x"}, {DayKey: "1"}})
	require.ErrorIs(t, err, domain.ErrImportNoRows)
	assert.Equal(t, 2, report.Skipped)
	assert.Zero(t, store.SetCalls())
}

func TestExport(t *testing.T) {
	t.Parallel()

	b := newTestBank(t, &mockStore{})
	ctx := context.Background()

	_, err := b.Export(ctx, domain.FormatXLSX)
	require.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = b.MergeMiss(ctx, respectQ())
	require.NoError(t, err)

	f, err := b.Export(ctx, domain.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "오답노트_20240216.csv", f.Name)
	assert.Contains(t, f.ContentType, "text/csv")

	var sheet mockSheet
	require.NoError(t, json.Unmarshal(f.Data, &sheet))
	assert.Equal(t, ExportHeader, sheet.Header)
	assert.Equal(t, [][]string{{"1", "1", "Respect", "(명) 존경 / 면", "0", "1", "2024-02-16 01:30:00"}}, sheet.Records)

	_, err = b.Export(ctx, domain.ExportFormat("xls"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportImport_RoundTrip(t *testing.T) {
	t.Parallel()

	b := newTestBank(t, &mockStore{})
	ctx := context.Background()

	misses := []domain.Question{
		respectQ(),
		{Word: "run", DayKey: "1", Verb: []string{"달리다"}},
		{Word: "apple", DayKey: "2", Noun: []string{"사과"}},
	}
	for _, q := range misses {
		_, err := b.MergeMiss(ctx, q)
		require.NoError(t, err)
	}
	before := b.Entries()

	f, err := b.Export(ctx, domain.FormatXLSX)
	require.NoError(t, err)

	report, rows, err := b.Import(ctx, f.Name, f.Data)
	require.NoError(t, err)
	assert.Equal(t, ImportReport{Merged: 3}, report)
	require.Len(t, rows, 3)

	after := b.Entries()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.GreaterOrEqual(t, after[i].Wrong, before[i].Wrong+1)
		assert.Equal(t, before[i].MeaningText, after[i].MeaningText)
	}
}

func TestImport_AliasesAndDecodeError(t *testing.T) {
	t.Parallel()

	codec := &mockCodec{DecodeFunc: func(string, []byte) ([]domain.Row, error) {
		return []domain.Row{
			{"일차": "5", "word": "brave", "의미": "(형) 용감한"},
			{"날짜": "5", "단어": "", "뜻": "x"},
		}, nil
	}}
	b := newTestBank(t, &mockStore{})
	b.codec = codec

	report, rows, err := b.Import(context.Background(), "exam.xlsx", nil)
	require.NoError(t, err)
	assert.Equal(t, ImportReport{Imported: 1, Skipped: 1}, report)
	assert.Equal(t, []domain.BankRow{{DayKey: "5", Word: "brave", MeaningText: "(형) 용감한"}}, rows)

	boom := errors.New("not a spreadsheet")
	codec.DecodeFunc = func(string, []byte) ([]domain.Row, error) { return nil, boom }
	_, _, err = b.Import(context.Background(), "exam.xlsx", nil)
	require.ErrorIs(t, err, boom)
}
