package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/deskbot/goexch/pkg/sdk/api"
	"github.com/deskbot/goexch/pkg/sdk/identity"
	"github.com/deskbot/goexch/pkg/sigchan"
	"github.com/deskbot/goexch/pkg/syncgroup"
)

// ErrNoIdentity is returned by any operation invoked before Bootstrap
// has established an identity. Nothing goes on the wire in that case.
var ErrNoIdentity = errors.New("session: no identity established")

// Exchange is the API surface the session consumes. *api.Client
// implements it; tests substitute a recording fake.
type Exchange interface {
	CreateAccount(ctx context.Context, pubkey string) (*api.CreateAccountRes, error)
	ActiveAccount(ctx context.Context) (*api.ActiveAccountRes, error)
	ListAccounts(ctx context.Context) (*api.ListAccountsRes, error)
	GetOrders(ctx context.Context, ident identity.Identity, side api.Side, coinPair string, start, end int) (*api.OrdersRes, error)
	SubmitOrder(ctx context.Context, ident identity.Identity, req api.OrderReq) (*api.OrderRes, error)
	GetBalance(ctx context.Context, ident identity.Identity, coinType string) (*api.BalanceRes, error)
	GetWalletBalance(ctx context.Context, ident identity.Identity, walletID string) (*api.WalletBalanceRes, error)
	GetDepositAddress(ctx context.Context, ident identity.Identity, coinType string) (*api.DepositAddrRes, error)
	CreateWallet(ctx context.Context, ident identity.Identity, walletType, seed string) (*api.CreateWalletRes, error)
	CreateWalletAddress(ctx context.Context, ident identity.Identity, walletID string) (*api.WalletAddressRes, error)
	AdjustBalance(ctx context.Context, ident identity.Identity, walletType, dst, amount string) error
}

// Notifier carries a failure reason to the user. The browser original
// used a blocking alert; the desk leaves the medium to the caller.
type Notifier interface {
	Notify(message string)
}

// Recorder journals submitted orders and balance snapshots.
// Best-effort: the session logs and moves on when recording fails.
type Recorder interface {
	RecordOrder(ctx context.Context, side string, amount, price, orderID uint64) error
	RecordBalance(ctx context.Context, coinType string, amount uint64) error
}

// SeedStore persists wallet seeds between runs.
type SeedStore interface {
	SetString(key, val string) error
}

// EventSource supplies deposit/withdraw history. No server endpoint
// exists yet; the interface pins where one would plug in.
type EventSource interface {
	Events(ctx context.Context) ([]api.Event, error)
}

// Wallet is the client-side view of one wallet. Type is the identity
// key: the desk keeps at most one wallet per coin type.
type Wallet struct {
	Type    string            `json:"type"`
	ID      string            `json:"id"`
	Balance api.WalletBalance `json:"balance"`
}

// Config assembles a session.
type Config struct {
	Exchange Exchange
	Notifier Notifier // optional; defaults to log-only
	Recorder Recorder // optional
	Seeds    SeedStore
	Events   EventSource

	CoinPair   string
	CoinTypes  []string
	OrderStart int
	OrderEnd   int
}

// Session owns all per-session exchange state. Every mutable field has
// exactly one writer operation; concurrent refreshes for the same field
// resolve last-write-wins by response arrival.
type Session struct {
	exchange Exchange
	notifier Notifier
	recorder Recorder
	seeds    SeedStore
	events   EventSource
	changed  *sigchan.Chan

	coinPair   string
	coinTypes  []string
	orderStart int
	orderEnd   int

	// fanout is the bootstrap refresh group; kept so tests can wait on
	// the fire-and-forget refreshes.
	fanout *syncgroup.SyncGroup

	mu       sync.RWMutex
	ident    identity.Identity
	bids     []api.Order
	asks     []api.Order
	balances map[string]uint64
	wallets  []Wallet
	deposits map[string]string

	orderDialogOpen bool
	walletCreating  bool
}

// New builds a session with empty, non-nil collections so a renderer
// never observes an absent list before the first fetch.
func New(cfg Config) *Session {
	n := cfg.Notifier
	if n == nil {
		n = logNotifier{}
	}
	return &Session{
		exchange:   cfg.Exchange,
		notifier:   n,
		recorder:   cfg.Recorder,
		seeds:      cfg.Seeds,
		events:     cfg.Events,
		changed:    sigchan.New(1),
		coinPair:   cfg.CoinPair,
		coinTypes:  append([]string(nil), cfg.CoinTypes...),
		orderStart: cfg.OrderStart,
		orderEnd:   cfg.OrderEnd,
		bids:       []api.Order{},
		asks:       []api.Order{},
		balances:   map[string]uint64{},
		wallets:    []Wallet{},
		deposits:   map[string]string{},
	}
}

// Changed signals after every state mutation. The rendering collaborator
// selects on it to re-read the accessors.
func (s *Session) Changed() <-chan struct{} {
	return s.changed.C()
}

// identity returns the active identity, or ErrNoIdentity before
// bootstrap. Every network-touching operation calls this first.
func (s *Session) identity() (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ident.IsZero() {
		return identity.Identity{}, ErrNoIdentity
	}
	return s.ident, nil
}

// Identity returns the session identity; zero before bootstrap.
func (s *Session) Identity() identity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident
}

// Orders returns a copy of one side of the book.
func (s *Session) Orders(side api.Side) []api.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if side == api.SideAsk {
		return append([]api.Order{}, s.asks...)
	}
	return append([]api.Order{}, s.bids...)
}

// Balances returns a copy of the balance map. Fields populate
// independently; a missing key means that coin type has not resolved yet.
func (s *Session) Balances() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]uint64, len(s.balances))
	for k, v := range s.balances {
		out[k] = v
	}
	return out
}

// Wallets returns a copy of the wallet list.
func (s *Session) Wallets() []Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Wallet{}, s.wallets...)
}

// DepositAddresses returns a copy of the per-coin-type address map.
func (s *Session) DepositAddresses() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.deposits))
	for k, v := range s.deposits {
		out[k] = v
	}
	return out
}

// OpenOrderDialog marks the order input dialog visible. SubmitOrder
// clears it exactly once per submission.
func (s *Session) OpenOrderDialog() {
	s.mu.Lock()
	s.orderDialogOpen = true
	s.mu.Unlock()
	s.changed.Emit()
}

// OrderDialogOpen reports the order dialog flag.
func (s *Session) OrderDialogOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderDialogOpen
}

// WalletCreating reports the wallet-creation-in-progress flag.
func (s *Session) WalletCreating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletCreating
}

// Accounts lists the accounts known to the server. Pure read; requires
// no identity.
func (s *Session) Accounts(ctx context.Context) ([]api.AccountInfo, error) {
	res, err := s.exchange.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return res.Accounts, nil
}

// Events returns deposit/withdraw history from the configured source;
// empty when none is wired.
func (s *Session) Events(ctx context.Context) []api.Event {
	if s.events == nil {
		return []api.Event{}
	}
	evts, err := s.events.Events(ctx)
	if err != nil {
		slog().Warnf("event source failed: %v", err)
		return []api.Event{}
	}
	return evts
}
