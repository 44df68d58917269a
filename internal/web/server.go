// Package web exposes the dashboard: an HTML UI, an SSE stream of balance
// snapshots and a JSON trade endpoint.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coindash/internal/domain"
	"github.com/vadiminshakov/coindash/internal/services/wallet"
)

const sseHeartbeat = 30 * time.Second

// TradeExecutor is the session surface the web layer consumes.
type TradeExecutor interface {
	Execute(ctx context.Context, intent domain.TradeIntent) domain.Result
	Snapshot() domain.Balance
	Ready() bool
	Listening() bool
	Identity() string
	Pair() domain.Pair
}

// BalanceFeed is the store's push channel surface.
type BalanceFeed interface {
	Subscribe(identity string) chan domain.Balance
	Unsubscribe(ch chan domain.Balance)
}

// Server exposes HTTP endpoints serving the HTML UI, the SSE stream and the
// trade API.
type Server struct {
	Addr    string
	Session TradeExecutor
	Feed    BalanceFeed
	Logger  *zap.Logger
}

// NewServer creates a new web server instance.
func NewServer(addr string, session TradeExecutor, feed BalanceFeed, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Session: session, Feed: feed, Logger: logger}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/balance/stream", s.handleBalanceStream)
	mux.HandleFunc("/trade", s.handleTrade)
	mux.HandleFunc("/wallet/address", s.handleWalletAddress)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleBalanceStream(w http.ResponseWriter, r *http.Request) {
	if s.Feed == nil || s.Session == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "balance feed not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeats keep proxies from dropping the connection
	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	ch := s.Feed.Subscribe(s.Session.Identity())
	defer s.Feed.Unsubscribe(ch)

	send := func(balance domain.Balance) error {
		snapshot := domain.NewBalanceSnapshot(time.Now(), s.Session.Identity(), s.Session.Pair(), balance, "")
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: balance\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return nil
	}

	// replay the last known snapshot so a fresh tab renders immediately
	if s.Session.Ready() {
		if err := send(s.Session.Snapshot()); err != nil {
			s.Logger.Warn("balance stream initial send", zap.Error(err))
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case balance, open := <-ch:
			if !open {
				return
			}
			if err := send(balance); err != nil {
				s.Logger.Warn("balance stream send", zap.Error(err))
				return
			}
		}
	}
}

type tradeRequest struct {
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
}

type tradeResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Balance *domain.BalanceSnapshot `json:"balance,omitempty"`
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Session == nil {
		writeJSON(w, http.StatusServiceUnavailable, tradeResponse{Message: "session not available"})
		return
	}

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, tradeResponse{Message: "invalid request body"})
		return
	}

	kind, err := domain.ParseIntentKind(req.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, tradeResponse{Message: "unknown trade kind"})
		return
	}

	// withdraw ignores the amount, everything else requires a number
	amount := decimal.Zero
	if kind != domain.IntentWithdraw {
		amount, err = decimal.NewFromString(req.Amount)
		if err != nil {
			writeJSON(w, http.StatusOK, tradeResponse{Message: "Enter a valid amount greater than zero."})
			return
		}
	}

	result := s.Session.Execute(r.Context(), domain.TradeIntent{Kind: kind, Amount: amount})

	resp := tradeResponse{Success: result.Success, Message: result.Message}
	if result.Success {
		snapshot := domain.NewBalanceSnapshot(time.Now(), s.Session.Identity(), s.Session.Pair(), s.Session.Snapshot(), "")
		resp.Balance = &snapshot
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWalletAddress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"address": wallet.NewAddress()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
