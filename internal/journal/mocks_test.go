package journal_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/polyjournal/internal/domain"
)

// --- mocks ---

type mockPositions struct {
	mu        sync.Mutex
	positions []domain.Position
	err       error
	calls     int
}

func (m *mockPositions) FetchPositions(_ context.Context, _ domain.Wallet) ([]domain.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.positions, m.err
}

type mockMarkets struct {
	markets []domain.Market
	err     error
}

func (m *mockMarkets) FetchMarkets(_ context.Context) ([]domain.Market, error) {
	return m.markets, m.err
}

type memoryStore struct {
	mu       sync.Mutex
	notes    map[string]domain.TradeNote
	reviews  []domain.ThesisReview
	notesErr error
	saveErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{notes: make(map[string]domain.TradeNote)}
}

func (m *memoryStore) SaveNote(_ context.Context, n domain.TradeNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[string(n.Wallet)+"/"+n.TradeID] = n
	return nil
}

func (m *memoryStore) GetNotes(_ context.Context, w domain.Wallet) (map[string]domain.TradeNote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notesErr != nil {
		return nil, m.notesErr
	}
	out := make(map[string]domain.TradeNote)
	for _, n := range m.notes {
		if n.Wallet == w {
			out[n.TradeID] = n
		}
	}
	return out, nil
}

func (m *memoryStore) SaveReview(_ context.Context, r domain.ThesisReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memoryStore) ListReviews(_ context.Context, w domain.Wallet, tradeID string) ([]domain.ThesisReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.ThesisReview{}
	for _, r := range m.reviews {
		if r.Wallet == w && r.TradeID == tradeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) Close() error { return nil }

type mockReviewer struct {
	feedback string
	err      error
	theses   []string
}

func (m *mockReviewer) Review(_ context.Context, thesis string) (string, error) {
	m.theses = append(m.theses, thesis)
	return m.feedback, m.err
}

func (m *mockReviewer) Model() string { return "mock-model" }

type mockNotifier struct {
	mu        sync.Mutex
	notified  []domain.Dashboard
	errs      []error
	notifyErr error
}

func (m *mockNotifier) Notify(_ context.Context, d domain.Dashboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = append(m.notified, d)
	return m.notifyErr
}

func (m *mockNotifier) NotifyError(_ context.Context, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, err)
	return nil
}

func (m *mockNotifier) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notified), len(m.errs)
}

// --- helpers ---

const wallet = domain.Wallet("0x56687bf447db6ffa42ffe2204a05edaa20f55839")

func makePosition(market string, realized, unrealized string, resolved bool, day int) domain.Position {
	return domain.Position{
		Market:        market,
		Size:          decimal.NewFromInt(10),
		AvgPrice:      decimal.RequireFromString("0.5"),
		Collateral:    decimal.NewFromInt(5),
		RealizedPnL:   decimal.RequireFromString(realized),
		UnrealizedPnL: decimal.RequireFromString(unrealized),
		LastTradeTime: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Info: domain.MarketInfo{
			Question:   "Question " + market,
			Category:   "Crypto",
			IsResolved: resolved,
		},
	}
}

func samplePositions() []domain.Position {
	return []domain.Position{
		makePosition("0xa", "10", "0", true, 1),  // win
		makePosition("0xb", "-3", "0", true, 3),  // loss
		makePosition("0xc", "0", "2", false, 5),  // pending
		makePosition("0xd", "5", "0", true, 2),   // win
	}
}
