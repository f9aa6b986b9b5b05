package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/deskbot/goexch/pkg/sdk/api"
)

// CreateWallet creates a wallet of the given type, then chains a second
// call that provisions an address for the new wallet id. The two steps
// are strictly sequential; the in-progress flag is cleared only after
// the second call has resolved either way. An empty seed gets a
// generated one, persisted to the seed store when one is configured.
//
// Wallets are identified by type on the client: creating a type that
// already exists updates that entry's id in place instead of appending.
func (s *Session) CreateWallet(ctx context.Context, walletType, seed string) (Wallet, error) {
	s.mu.Lock()
	s.walletCreating = true
	s.mu.Unlock()
	s.changed.Emit()

	defer func() {
		s.mu.Lock()
		s.walletCreating = false
		s.mu.Unlock()
		s.changed.Emit()
	}()

	ident, err := s.identity()
	if err != nil {
		return Wallet{}, err
	}

	if seed == "" {
		seed = uuid.NewString()
	}

	res, err := s.exchange.CreateWallet(ctx, ident, walletType, seed)
	if err != nil {
		s.notifier.Notify(walletFailureReason(err))
		return Wallet{}, err
	}

	s.storeSeed(walletType, seed)

	s.mu.Lock()
	var wallet Wallet
	updated := false
	for i := range s.wallets {
		if s.wallets[i].Type == walletType {
			s.wallets[i].ID = res.ID
			wallet = s.wallets[i]
			updated = true
			break
		}
	}
	if !updated {
		wallet = Wallet{Type: walletType, ID: res.ID}
		s.wallets = append(s.wallets, wallet)
	}
	s.mu.Unlock()
	s.changed.Emit()

	// step two: provision an address for the fresh wallet id. Its
	// outcome does not undo the wallet entry.
	if _, err := s.exchange.CreateWalletAddress(ctx, ident, res.ID); err != nil {
		slog().Warnf("address for wallet %s: %v", res.ID, err)
	}

	return wallet, nil
}

// AdjustBalance issues the privileged balance adjustment. The amount is
// passed through unvalidated. Success deliberately performs no local
// update; the caller re-triggers a balance refresh when it wants to see
// the result.
func (s *Session) AdjustBalance(ctx context.Context, walletType, dst, amount string) error {
	ident, err := s.identity()
	if err != nil {
		return err
	}

	if err := s.exchange.AdjustBalance(ctx, ident, walletType, dst, amount); err != nil {
		s.notifier.Notify(walletFailureReason(err))
		return err
	}
	return nil
}

func (s *Session) storeSeed(walletType, seed string) {
	if s.seeds == nil {
		return
	}
	if err := s.seeds.SetString("wallet/seed/"+walletType, seed); err != nil {
		slog().Warnf("persist %s wallet seed: %v", walletType, err)
	}
}

func walletFailureReason(err error) string {
	var soft *api.SoftError
	if errors.As(err, &soft) && soft.Reason != "" {
		return soft.Reason
	}
	return "wallet operation failed"
}
