package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskbot/goexch/pkg/sdk/api"
)

func (s *Server) handleSessionState(c *gin.Context) {
	c.JSON(http.StatusOK, s.stateSnapshot())
}

func (s *Server) handleOrders(c *gin.Context) {
	side, err := api.ParseSide(c.DefaultQuery("side", "bid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"side": side, "orders": s.cfg.Session.Orders(side)})
}

func (s *Server) handleBalances(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"balances": s.cfg.Session.Balances()})
}

func (s *Server) handleWallets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"wallets": s.cfg.Session.Wallets()})
}

func (s *Server) handleDeposits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deposits": s.cfg.Session.DepositAddresses()})
}

func (s *Server) handleAccounts(c *gin.Context) {
	accounts, err := s.cfg.Session.Accounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *Server) handleEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": s.cfg.Session.Events(c.Request.Context())})
}

func (s *Server) handleNotice(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notice": s.notice.take()})
}

func (s *Server) handleJournalOrders(c *gin.Context) {
	if s.cfg.Journal == nil {
		c.JSON(http.StatusOK, gin.H{"orders": []any{}})
		return
	}
	entries, err := s.cfg.Journal.RecentOrders(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": entries})
}

type submitOrderReq struct {
	Side   string `json:"side"`
	Amount string `json:"amount"`
	Price  string `json:"price"`
}

func (s *Server) handleSubmitOrder(c *gin.Context) {
	var req submitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := api.ParseSide(req.Side)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.cfg.Session.SubmitOrder(c.Request.Context(), side, req.Amount, req.Price); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "notice": s.notice.take()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "orders": s.cfg.Session.Orders(side)})
}

type createWalletReq struct {
	Type string `json:"type"`
	Seed string `json:"seed"`
}

func (s *Server) handleCreateWallet(c *gin.Context) {
	var req createWalletReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}
	wallet, err := s.cfg.Session.CreateWallet(c.Request.Context(), req.Type, req.Seed)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "notice": s.notice.take()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "wallet": wallet})
}

type depositAddressReq struct {
	CoinType string `json:"coin_type"`
}

func (s *Server) handleDepositAddress(c *gin.Context) {
	var req depositAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr, err := s.cfg.Session.EnsureDepositAddress(c.Request.Context(), req.CoinType)
	if err != nil {
		// read-path policy: no user-facing failure, just no address yet
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "coin_type": req.CoinType, "address": addr})
}

type refreshReq struct {
	Side string `json:"side"` // optional; empty refreshes both
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshReq
	_ = c.ShouldBindJSON(&req)

	sess := s.cfg.Session
	ctx := c.Request.Context()
	switch req.Side {
	case "":
		_ = sess.RefreshOrders(ctx, api.SideBid)
		_ = sess.RefreshOrders(ctx, api.SideAsk)
		sess.RefreshAllBalances(ctx)
		sess.RefreshWalletBalances(ctx)
	default:
		side, err := api.ParseSide(req.Side)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = sess.RefreshOrders(ctx, side)
	}
	c.Status(http.StatusAccepted)
}

type adjustBalanceReq struct {
	WalletType string `json:"wallet_type"`
	Dst        string `json:"dst"`
	Amount     string `json:"amount"`
}

func (s *Server) handleAdjustBalance(c *gin.Context) {
	var req adjustBalanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.cfg.Session.AdjustBalance(c.Request.Context(), req.WalletType, req.Dst, req.Amount); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "notice": s.notice.take()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
