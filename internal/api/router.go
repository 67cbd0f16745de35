package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rupeehall/wallet-engine/internal/infra/metrics"
	"github.com/rupeehall/wallet-engine/internal/services/wallet"
)

// NewRouter registers all wallet endpoints. The account key is an opaque
// path segment; the authenticating gateway in front of this service is
// responsible for making sure callers only reach their own key.
func NewRouter(svc *wallet.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/wallet/{accountKey}", h.CreateWalletHandler)
	r.Post("/wallet/{accountKey}/deposit", h.DepositHandler)
	r.Post("/wallet/{accountKey}/withdraw", h.WithdrawHandler)
	r.Get("/wallet/{accountKey}/balance", h.GetBalanceHandler)
	r.Post("/wallet/{accountKey}/bets", h.PlaceBetHandler)
	r.Post("/wallet/{accountKey}/bets/resolve", h.ResolveBetHandler)
	r.Get("/wallet/{accountKey}/history", h.GameHistoryHandler)

	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		metrics.RequestsTotal.
			WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Inc()
	})
}
