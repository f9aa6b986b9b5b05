package session

import (
	"context"
)

// EnsureDepositAddress asks the server for the coin type's deposit
// address; the server returns the existing one or allocates it. The
// entry is keyed by coin type and overwritten, so repeated calls never
// accumulate duplicates. On failure nothing is stored and the caller's
// renderer must cope with a coin type that never acquires an address.
func (s *Session) EnsureDepositAddress(ctx context.Context, coinType string) (string, error) {
	ident, err := s.identity()
	if err != nil {
		return "", err
	}

	res, err := s.exchange.GetDepositAddress(ctx, ident, coinType)
	if err != nil {
		slog().Warnf("deposit address for %s: %v", coinType, err)
		return "", err
	}

	s.mu.Lock()
	s.deposits[coinType] = res.Address
	s.mu.Unlock()
	s.changed.Emit()

	return res.Address, nil
}
