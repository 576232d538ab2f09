// Package rpcserver exposes the ledger queries over JSON-RPC 2.0.
package rpcserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	rpcjson "github.com/gorilla/rpc/v2/json2"
	"github.com/iov-one/remit/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// Config configures the API server.
type Config struct {
	Listen         string
	AllowedOrigins []string
	// Debug exposes internal error messages to clients.
	Debug bool
}

// NewRouter returns the API handler. JSON-RPC is served on /rpc, metrics
// gathered from gatherer on /metrics.
func NewRouter(ledger Ledger, gatherer prometheus.Gatherer, debug bool) (*mux.Router, error) {
	r := mux.NewRouter()

	rpcserver := rpc.NewServer()
	rpcserver.RegisterCodec(rpcjson.NewCodec(), "application/json")
	if err := rpcserver.RegisterService(&RPCAPI{ledger: ledger, debug: debug}, ServiceName); err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "register service: %s", err)
	}

	r.Handle("/rpc", rpcserver).Methods("POST")
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/rpc", warnHandler).Methods("GET", "HEAD", "PUT", "DELETE", "PATCH")
	return r, nil
}

// Serve runs the API server until ctx is cancelled.
func Serve(ctx context.Context, conf Config, router http.Handler, logger log.Logger) error {
	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(conf.AllowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(conf.AllowedOrigins),
		)
	}

	logger.Info("JSON RPC service listen and serving", "listen", conf.Listen, "allowedOrigins", conf.AllowedOrigins)
	svr := http.Server{
		Addr:         conf.Listen,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      handlers.CORS(corsOptions...)(router),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- svr.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "err", err)
			return err
		}
		return nil
	}
}

func warnHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
	fmt.Fprintf(w, "Forbid '%v' on '%v'\n", r.Method, r.RequestURI)
}
