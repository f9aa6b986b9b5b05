package session

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/deskbot/goexch/pkg/sdk/api"
	"github.com/deskbot/goexch/pkg/sdk/identity"
	"github.com/deskbot/goexch/pkg/syncgroup"
)

// Bootstrap establishes the session identity and fires the initial
// refresh fan-out. It runs once; a session that already has an identity
// returns immediately. Neither lookup nor creation is retried: failure
// is surfaced to the user and the session stays unusable.
func (s *Session) Bootstrap(ctx context.Context) error {
	if !s.Identity().IsZero() {
		return nil
	}

	ident, wallets, err := s.discoverIdentity(ctx)
	if err != nil {
		s.notifier.Notify("cannot get account from server, please check connection with server")
		return err
	}

	s.mu.Lock()
	s.ident = ident
	s.wallets = wallets
	s.mu.Unlock()
	s.changed.Emit()

	slog().Infof("bootstrap complete, %d wallet reference(s)", len(wallets))

	// Fire-and-forget fan-out: the refreshes resolve independently and
	// none waits on another. Each one swallows its own failures.
	g := syncgroup.NewSyncGroup()
	g.Add(func() { _ = s.RefreshOrders(ctx, api.SideBid) })
	g.Add(func() { _ = s.RefreshOrders(ctx, api.SideAsk) })
	for _, ct := range s.coinTypes {
		ct := ct
		g.Add(func() { _ = s.RefreshBalance(ctx, ct) })
		g.Add(func() { _, _ = s.EnsureDepositAddress(ctx, ct) })
	}
	g.Add(func() { s.RefreshWalletBalances(ctx) })
	s.fanout = g
	g.Run()

	return nil
}

// discoverIdentity looks up the server's active identity first and
// falls back to registering a fresh one.
func (s *Session) discoverIdentity(ctx context.Context) (identity.Identity, []Wallet, error) {
	active, lookupErr := s.exchange.ActiveAccount(ctx)
	if lookupErr == nil && active.Pubkey != "" {
		return identity.FromPubkey(active.Pubkey), walletRefs(active.WalletIDs), nil
	}
	if lookupErr != nil {
		slog().Infof("no active account (%v), creating one", lookupErr)
	}

	local, err := identity.New()
	if err != nil {
		return identity.Identity{}, nil, errors.Wrap(err, "generate keypair")
	}

	created, err := s.exchange.CreateAccount(ctx, local.Pubkey)
	if err != nil {
		return identity.Identity{}, nil, errors.Wrap(err, "create account")
	}

	switch {
	case created.Pubkey == local.Pubkey || created.AccountID == local.Pubkey:
		// server registered our key; keep the local pair so the secret
		// half stays with the session
		return local, []Wallet{}, nil
	case created.AccountID != "" && created.Key != "":
		return identity.FromSharedSecret(created.AccountID, created.Key), []Wallet{}, nil
	case created.Pubkey != "":
		return identity.FromPubkey(created.Pubkey), []Wallet{}, nil
	}
	return identity.Identity{}, nil, errors.New("creation response carried no identity")
}

// walletRefs builds zero-balance wallet entries from the wallet_ids map
// of the active-account response.
func walletRefs(ids map[string]string) []Wallet {
	if len(ids) == 0 {
		return []Wallet{}
	}
	types := make([]string, 0, len(ids))
	for t := range ids {
		types = append(types, t)
	}
	sort.Strings(types)

	wallets := make([]Wallet, 0, len(types))
	for _, t := range types {
		wallets = append(wallets, Wallet{Type: t, ID: ids[t]})
	}
	return wallets
}
