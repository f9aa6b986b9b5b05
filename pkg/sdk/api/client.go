package api

import (
	"context"
	"net/http"
	"strconv"

	deskhttp "github.com/deskbot/goexch/pkg/sdk/http"
	"github.com/deskbot/goexch/pkg/sdk/identity"
)

// Client is the typed surface over the exchange HTTP API.
type Client struct {
	http *deskhttp.Client
}

func NewClient(host string) *Client {
	return &Client{http: deskhttp.NewClient(host)}
}

// envelope check shared by every call: a parsed response with
// success=false becomes a SoftError.
func soft(r Result) error {
	if r.Success {
		return nil
	}
	return &SoftError{Reason: r.Reason}
}

// CreateAccount registers a locally generated pubkey with the server.
// The response carries either the id+key pair or the registered pubkey,
// depending on the server generation.
func (c *Client) CreateAccount(ctx context.Context, pubkey string) (*CreateAccountRes, error) {
	var res CreateAccountRes
	opt := &deskhttp.RequestOptions{Form: map[string]string{"pubkey": pubkey}}
	if err := c.http.DoRequest(ctx, http.MethodPost, "/api/v1/accounts", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// ActiveAccount looks up the identity the server considers active.
func (c *Client) ActiveAccount(ctx context.Context) (*ActiveAccountRes, error) {
	var res ActiveAccountRes
	opt := &deskhttp.RequestOptions{Params: map[string]string{"active": "1"}}
	if err := c.http.DoRequest(ctx, http.MethodGet, "/api/v1/account", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListAccounts lists the accounts the server knows.
func (c *Client) ListAccounts(ctx context.Context) (*ListAccountsRes, error) {
	var res ListAccountsRes
	if err := c.http.DoRequest(ctx, http.MethodGet, "/api/v1/account", nil, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetOrders fetches one side of the book for a coin pair. The page
// window is passed through to the server untouched.
func (c *Client) GetOrders(ctx context.Context, ident identity.Identity, side Side, coinPair string, start, end int) (*OrdersRes, error) {
	params := ident.Query()
	params["coin_pair"] = coinPair
	params["start"] = strconv.Itoa(start)
	params["end"] = strconv.Itoa(end)

	var res OrdersRes
	opt := &deskhttp.RequestOptions{Params: params}
	if err := c.http.DoRequest(ctx, http.MethodGet, "/api/v1/orders/"+string(side), opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitOrder posts a new order.
func (c *Client) SubmitOrder(ctx context.Context, ident identity.Identity, req OrderReq) (*OrderRes, error) {
	var res OrderRes
	opt := &deskhttp.RequestOptions{
		Params: ident.Query(),
		JSON:   req,
	}
	if err := c.http.DoRequest(ctx, http.MethodPost, "/api/v1/account/order", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBalance fetches the account balance for one coin type.
func (c *Client) GetBalance(ctx context.Context, ident identity.Identity, coinType string) (*BalanceRes, error) {
	params := ident.Query()
	params["coin_type"] = coinType

	var res BalanceRes
	opt := &deskhttp.RequestOptions{Params: params}
	if err := c.http.DoRequest(ctx, http.MethodGet, "/api/v1/account/balance", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetWalletBalance fetches the balance of one wallet by id.
func (c *Client) GetWalletBalance(ctx context.Context, ident identity.Identity, walletID string) (*WalletBalanceRes, error) {
	params := ident.Query()
	params["id"] = walletID

	var res WalletBalanceRes
	opt := &deskhttp.RequestOptions{Params: params}
	if err := c.http.DoRequest(ctx, http.MethodGet, "/api/v1/wallet/balance", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetDepositAddress returns an existing deposit address for the coin
// type or has the server allocate one.
func (c *Client) GetDepositAddress(ctx context.Context, ident identity.Identity, coinType string) (*DepositAddrRes, error) {
	form := ident.Query()
	form["coin_type"] = coinType

	var res DepositAddrRes
	opt := &deskhttp.RequestOptions{Form: form}
	if err := c.http.DoRequest(ctx, http.MethodPost, "/api/v1/account/deposit_address", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateWallet creates a wallet of the given type from a seed.
func (c *Client) CreateWallet(ctx context.Context, ident identity.Identity, walletType, seed string) (*CreateWalletRes, error) {
	form := ident.Query()
	form["type"] = walletType
	form["seed"] = seed

	var res CreateWalletRes
	opt := &deskhttp.RequestOptions{Form: form}
	if err := c.http.DoRequest(ctx, http.MethodPost, "/api/v1/wallet", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateWalletAddress creates a new address inside a wallet.
func (c *Client) CreateWalletAddress(ctx context.Context, ident identity.Identity, walletID string) (*WalletAddressRes, error) {
	form := ident.Query()
	form["id"] = walletID

	var res WalletAddressRes
	opt := &deskhttp.RequestOptions{Form: form}
	if err := c.http.DoRequest(ctx, http.MethodPost, "/api/v1/wallet/address", opt, &res); err != nil {
		return nil, err
	}
	if err := soft(res.Result); err != nil {
		return nil, err
	}
	return &res, nil
}

// AdjustBalance is the privileged balance adjustment. The amount string
// is passed through as given; the server does the validating.
func (c *Client) AdjustBalance(ctx context.Context, ident identity.Identity, walletType, dst, amount string) error {
	form := ident.Query()
	form["wallet_type"] = walletType
	form["dst"] = dst
	form["amount"] = amount

	var res EmptyRes
	opt := &deskhttp.RequestOptions{Form: form}
	if err := c.http.DoRequest(ctx, http.MethodPut, "/api/v1/admin/account/balance", opt, &res); err != nil {
		return err
	}
	return soft(res.Result)
}
