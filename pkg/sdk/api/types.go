package api

import (
	"fmt"
)

// Result is the response envelope carried by every endpoint:
// {"result": {"success": bool, "reason": string}, ...payload}.
type Result struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// Envelope is embedded by all response types.
type Envelope struct {
	Result Result `json:"result"`
}

// SoftError is a well-formed response whose envelope reports failure.
// Reads swallow it with a log line; writes surface Reason to the user.
type SoftError struct {
	Reason string
}

func (e *SoftError) Error() string {
	if e.Reason == "" {
		return "request did not succeed"
	}
	return fmt.Sprintf("request did not succeed: %s", e.Reason)
}

// Side is an order book side.
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// ParseSide validates a side string from user input.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBid, SideAsk:
		return Side(s), nil
	}
	return "", fmt.Errorf("unknown order side %q", s)
}

// Order is one entry of an order book side.
type Order struct {
	ID        uint64 `json:"id"`
	Type      string `json:"type"`
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	RestAmt   uint64 `json:"rest_amt"`
	CreatedAt int64  `json:"created_at"`
	CoinType  string `json:"coin_type"`
}

// Event is one deposit/withdraw history entry. The backing endpoint does
// not exist yet; the type pins the shape the desk expects.
type Event struct {
	EventType string `json:"event_type"`
	Timestamp int64  `json:"timestamp"`
	CoinType  string `json:"coin_type"`
	Amount    uint64 `json:"amount"`
}

// AccountInfo is one entry of the account listing.
type AccountInfo struct {
	Pubkey    string `json:"pubkey"`
	CreatedAt int64  `json:"created_at"`
}

type CreateAccountRes struct {
	Envelope
	// shared-secret form
	AccountID string `json:"account_id,omitempty"`
	Key       string `json:"key,omitempty"`
	// pubkey form
	Pubkey    string `json:"pubkey,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type ActiveAccountRes struct {
	Envelope
	Pubkey string `json:"pubkey"`
	// WalletIDs maps wallet type to wallet id.
	WalletIDs map[string]string `json:"wallet_ids,omitempty"`
}

type ListAccountsRes struct {
	Envelope
	Accounts []AccountInfo `json:"accounts"`
}

type OrdersRes struct {
	Envelope
	CoinPair string  `json:"coin_pair"`
	Type     string  `json:"type"`
	Orders   []Order `json:"orders"`
}

// OrderReq is the JSON body of an order submission. Identity travels in
// the query string like everywhere else.
type OrderReq struct {
	Type     string `json:"type"`
	CoinPair string `json:"coin_pair"`
	Amount   uint64 `json:"amount"`
	Price    uint64 `json:"price"`
}

type OrderRes struct {
	Envelope
	OrderID uint64 `json:"order_id"`
}

type BalanceRes struct {
	Envelope
	CoinType string `json:"coin_type"`
	Balance  uint64 `json:"balance"`
}

type WalletBalance struct {
	Amount uint64 `json:"amount"`
}

type WalletBalanceRes struct {
	Envelope
	Balance WalletBalance `json:"balance"`
}

type DepositAddrRes struct {
	Envelope
	CoinType string `json:"coin_type"`
	Address  string `json:"address"`
}

type CreateWalletRes struct {
	Envelope
	ID string `json:"id"`
}

type WalletAddressRes struct {
	Envelope
	Address string `json:"address"`
}

type EmptyRes struct {
	Envelope
}
