// Package http serves the JSON API over the ledger services.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"arthika/internal/cache"
	"arthika/internal/core"
	"arthika/internal/invest"
	"arthika/internal/ledger"
	applog "arthika/internal/log"
	"arthika/internal/services"
	"arthika/internal/store"
)

// Options configures the API server.
type Options struct {
	Addr      string
	Store     store.RecordStore
	Publisher services.SyncPublisher

	// FundListURL overrides the mutual-fund listing endpoint.
	FundListURL string
	// SuggestionsTTL bounds how long investment suggestions are reused.
	SuggestionsTTL time.Duration
}

type Server struct {
	http.Server

	auth     *services.AuthService
	incomes  *services.LedgerService[core.IncomeRecord, *core.IncomeRecord]
	expenses *services.LedgerService[core.ExpenseRecord, *core.ExpenseRecord]
	bills    *services.LedgerService[core.BillRecord, *core.BillRecord]
	billing  *services.BillingService

	incomeCol  *ledger.Collection[core.IncomeRecord, *core.IncomeRecord]
	expenseCol *ledger.Collection[core.ExpenseRecord, *core.ExpenseRecord]
	billCol    *ledger.Collection[core.BillRecord, *core.BillRecord]

	funds            *invest.Client
	suggestionsCache *cache.LRUCache[suggestionsResponse]
	cacheManager     *cache.Manager

	rateLimiter *rateLimiter
	metrics     *securityMetrics
	logs        *applog.StructuredLogger

	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer wires routes and background cleanup, returning a
// ready-to-run server.
func NewServer(opts Options) *Server {
	mux := http.NewServeMux()

	suggestionsTTL := opts.SuggestionsTTL
	if suggestionsTTL <= 0 {
		suggestionsTTL = 15 * time.Minute
	}

	incomeCol := ledger.NewCollection[core.IncomeRecord, *core.IncomeRecord](opts.Store, store.KeyIncomes)
	expenseCol := ledger.NewCollection[core.ExpenseRecord, *core.ExpenseRecord](opts.Store, store.KeyExpenses)
	billCol := ledger.NewCollection[core.BillRecord, *core.BillRecord](opts.Store, store.KeyBills)

	s := &Server{
		Server: http.Server{
			Addr:    opts.Addr,
			Handler: mux,
		},
		auth:     services.NewAuthService(opts.Store),
		incomes:  services.NewLedgerService(incomeCol, opts.Publisher),
		expenses: services.NewLedgerService(expenseCol, opts.Publisher),
		bills:    services.NewLedgerService(billCol, opts.Publisher),
		billing:  services.NewBillingService(opts.Store, billCol, expenseCol, opts.Publisher),

		incomeCol:  incomeCol,
		expenseCol: expenseCol,
		billCol:    billCol,

		funds:            invest.NewClient(opts.FundListURL),
		suggestionsCache: cache.NewLRUCache[suggestionsResponse](4, suggestionsTTL),
		cacheManager:     cache.NewManager(),

		rateLimiter: newRateLimiter(),
		metrics:     &securityMetrics{},
		logs:        applog.NewStructuredLogger(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)),

		now: time.Now,
	}

	s.cacheManager.Register(s.suggestionsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/signup", s.withSecurityHeaders(s.handleSignUp))
	mux.HandleFunc("POST /api/login", s.withSecurityHeaders(s.handleLogIn))
	mux.HandleFunc("GET /api/profile", s.withSecurityHeaders(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.withSecurityHeaders(s.handlePutProfile))
	mux.HandleFunc("GET /api/savings", s.withSecurityHeaders(s.handleGetSavings))
	mux.HandleFunc("PUT /api/savings", s.withSecurityHeaders(s.handlePutSavings))
	mux.HandleFunc("DELETE /api/savings", s.withSecurityHeaders(s.handleDeleteSavings))

	mux.HandleFunc("GET /api/incomes", s.withSecurityHeaders(s.handleListIncomes))
	mux.HandleFunc("POST /api/incomes", s.withSecurityHeaders(s.handleCreateIncome))
	mux.HandleFunc("DELETE /api/incomes/{id}", s.withSecurityHeaders(s.handleDeleteIncome))

	mux.HandleFunc("GET /api/expenses", s.withSecurityHeaders(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withSecurityHeaders(s.handleCreateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withSecurityHeaders(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/bills", s.withSecurityHeaders(s.handleListBills))
	mux.HandleFunc("POST /api/bills", s.withSecurityHeaders(s.handleCreateBill))
	mux.HandleFunc("PATCH /api/bills/{id}", s.withSecurityHeaders(s.handlePatchBill))
	mux.HandleFunc("DELETE /api/bills/{id}", s.withSecurityHeaders(s.handleDeleteBill))
	mux.HandleFunc("POST /api/bills/{id}/paid", s.withSecurityHeaders(s.handleBillPaid))

	mux.HandleFunc("GET /api/dashboard", s.withSecurityHeaders(s.handleDashboard))
	mux.HandleFunc("GET /api/suggestions", s.withSecurityHeaders(s.handleSuggestions))

	return s
}

// WithClock overrides the server clock, for tests.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	s.billing.WithClock(now)
	return s
}

// Shutdown stops the HTTP server and the cleanup goroutines exactly
// once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.logs.LogHTTPStart(ctx, r, clientIP, requestID)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request pattern",
				"request_id", requestID, "client_ip", clientIP, "url", r.URL.Path)
		}

		// Mutating methods hit storage; reads stay unthrottled.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logs.LogHTTPEnd(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP, requestID)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
