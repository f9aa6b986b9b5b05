// Package server is the rendering-surface boundary: a JSON control
// plane over the desk session. It exposes session state for a renderer
// to poll and dispatches user actions back into the session. No layout,
// no templates.
package server

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/deskbot/goexch/internal/journal"
	"github.com/deskbot/goexch/internal/session"
)

type Config struct {
	Session *session.Session
	Journal *journal.Journal // optional
	Notice  *NoticeBoard     // optional; shared with the session
}

type Server struct {
	cfg    Config
	notice *NoticeBoard
}

func New(cfg Config) (*Server, error) {
	if cfg.Session == nil {
		return nil, errors.New("session is required")
	}
	notice := cfg.Notice
	if notice == nil {
		notice = NewNoticeBoard()
	}
	return &Server{cfg: cfg, notice: notice}, nil
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")

	state := api.Group("/state")
	state.GET("/session", s.handleSessionState)
	state.GET("/orders", s.handleOrders)
	state.GET("/balances", s.handleBalances)
	state.GET("/wallets", s.handleWallets)
	state.GET("/deposits", s.handleDeposits)
	state.GET("/accounts", s.handleAccounts)
	state.GET("/events", s.handleEvents)
	state.GET("/notice", s.handleNotice)
	state.GET("/journal/orders", s.handleJournalOrders)
	state.GET("/stream", s.handleStream)

	actions := api.Group("/actions")
	actions.POST("/order", s.handleSubmitOrder)
	actions.POST("/wallet", s.handleCreateWallet)
	actions.POST("/deposit_address", s.handleDepositAddress)
	actions.POST("/refresh", s.handleRefresh)
	actions.PUT("/admin/balance", s.handleAdjustBalance)

	return r
}

// NoticeBoard latches the most recent user-facing notice so the
// renderer can display it on its next poll. It is the session.Notifier
// the desk hands to the session.
type NoticeBoard struct {
	mu   sync.Mutex
	last string
}

func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

var _ session.Notifier = (*NoticeBoard)(nil)

func (n *NoticeBoard) Notify(message string) {
	n.mu.Lock()
	n.last = message
	n.mu.Unlock()
}

func (n *NoticeBoard) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	msg := n.last
	n.last = ""
	return msg
}
