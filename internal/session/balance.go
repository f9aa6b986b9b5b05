package session

import (
	"context"
)

// RefreshBalance re-fetches the balance for one coin type and writes
// only that coin type's field. There is no "all balances loaded" signal;
// the map is partially populated at all times and each field reflects
// its own latest response.
func (s *Session) RefreshBalance(ctx context.Context, coinType string) error {
	ident, err := s.identity()
	if err != nil {
		return err
	}

	res, err := s.exchange.GetBalance(ctx, ident, coinType)
	if err != nil {
		slog().Warnf("refresh %s balance: %v", coinType, err)
		return err
	}

	s.mu.Lock()
	s.balances[coinType] = res.Balance
	s.mu.Unlock()
	s.changed.Emit()

	if s.recorder != nil {
		if rerr := s.recorder.RecordBalance(ctx, coinType, res.Balance); rerr != nil {
			slog().Warnf("journal %s balance: %v", coinType, rerr)
		}
	}

	return nil
}

// RefreshAllBalances fires one independent refresh per tracked coin
// type. A failing coin type leaves its field at the previous value and
// does not affect the others.
func (s *Session) RefreshAllBalances(ctx context.Context) {
	for _, ct := range s.coinTypes {
		_ = s.RefreshBalance(ctx, ct)
	}
}

// RefreshWalletBalances issues one balance request per known wallet id,
// writing each wallet's balance field independently. Wallets added or
// removed while requests are in flight keep whatever the matching
// response says; a missing wallet's response is dropped.
func (s *Session) RefreshWalletBalances(ctx context.Context) {
	ident, err := s.identity()
	if err != nil {
		return
	}

	for _, w := range s.Wallets() {
		res, err := s.exchange.GetWalletBalance(ctx, ident, w.ID)
		if err != nil {
			slog().Warnf("refresh wallet %s balance: %v", w.ID, err)
			continue
		}

		s.mu.Lock()
		for i := range s.wallets {
			if s.wallets[i].ID == w.ID {
				s.wallets[i].Balance = res.Balance
				break
			}
		}
		s.mu.Unlock()
		s.changed.Emit()
	}
}
