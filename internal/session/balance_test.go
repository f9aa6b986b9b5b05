package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskbot/goexch/pkg/sdk/api"
)

func TestRefreshBalanceWritesOnlyItsCoinType(t *testing.T) {
	exch := newFakeExchange()
	s := withIdentity(newTestSession(exch, nil))
	ctx := context.Background()

	exch.balanceRes["bitcoin"] = &api.BalanceRes{Envelope: ok(), CoinType: "bitcoin", Balance: 500}
	exch.balanceRes["skycoin"] = &api.BalanceRes{Envelope: ok(), CoinType: "skycoin", Balance: 900}

	require.NoError(t, s.RefreshBalance(ctx, "bitcoin"))
	require.NoError(t, s.RefreshBalance(ctx, "skycoin"))

	// refreshing bitcoin again must not disturb skycoin
	exch.balanceRes["bitcoin"] = &api.BalanceRes{Envelope: ok(), CoinType: "bitcoin", Balance: 650}
	require.NoError(t, s.RefreshBalance(ctx, "bitcoin"))

	balances := s.Balances()
	assert.Equal(t, uint64(650), balances["bitcoin"])
	assert.Equal(t, uint64(900), balances["skycoin"])
}

func TestRefreshBalanceFailureKeepsPreviousValue(t *testing.T) {
	exch := newFakeExchange()
	notifier := &memoryNotifier{}
	s := withIdentity(newTestSession(exch, notifier))
	ctx := context.Background()

	exch.balanceRes["bitcoin"] = &api.BalanceRes{Envelope: ok(), CoinType: "bitcoin", Balance: 500}
	require.NoError(t, s.RefreshBalance(ctx, "bitcoin"))

	exch.balanceErr["bitcoin"] = &api.SoftError{Reason: "not exist"}
	require.Error(t, s.RefreshBalance(ctx, "bitcoin"))

	assert.Equal(t, uint64(500), s.Balances()["bitcoin"])
	assert.Zero(t, notifier.count())
}

func TestRefreshAllBalancesPartialFailure(t *testing.T) {
	exch := newFakeExchange()
	s := withIdentity(newTestSession(exch, nil))

	exch.balanceRes["skycoin"] = &api.BalanceRes{Envelope: ok(), CoinType: "skycoin", Balance: 42}
	exch.balanceErr["bitcoin"] = errors.New("network down")

	s.RefreshAllBalances(context.Background())

	balances := s.Balances()
	assert.Equal(t, uint64(42), balances["skycoin"])
	_, present := balances["bitcoin"]
	assert.False(t, present, "a coin type that never resolved has no entry")
}

func TestRefreshWalletBalancesPerWallet(t *testing.T) {
	exch := newFakeExchange()
	s := withIdentity(newTestSession(exch, nil))

	s.mu.Lock()
	s.wallets = []Wallet{
		{Type: "bitcoin", ID: "bitcoin_wlt_1"},
		{Type: "skycoin", ID: "skycoin_wlt_1"},
	}
	s.mu.Unlock()

	exch.walletBalRes["bitcoin_wlt_1"] = &api.WalletBalanceRes{Envelope: ok(), Balance: api.WalletBalance{Amount: 11}}
	exch.walletBalErr["skycoin_wlt_1"] = errors.New("network down")

	s.RefreshWalletBalances(context.Background())

	wallets := s.Wallets()
	require.Len(t, wallets, 2)
	assert.Equal(t, uint64(11), wallets[0].Balance.Amount)
	assert.Zero(t, wallets[1].Balance.Amount, "failed wallet keeps its previous balance")
}
