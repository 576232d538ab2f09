package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/remit/metrics"
	"github.com/iov-one/remit/rpcserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const (
	flagListen = "listen"
	flagDebug  = "debug"
)

// ServeCmd runs the JSON-RPC API until interrupted.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON-RPC API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}

			n, err := openNode(cmd, m)
			if err != nil {
				return err
			}
			defer n.Close()
			n.app.WithObserver(m)

			debug, err := cmd.Flags().GetBool(flagDebug)
			if err != nil {
				return err
			}
			conf := rpcserver.Config{
				Listen:         n.conf.API.Listen,
				AllowedOrigins: n.conf.API.AllowedOrigins,
				Debug:          debug,
			}
			if listen, _ := cmd.Flags().GetString(flagListen); listen != "" {
				conf.Listen = listen
			}

			router, err := rpcserver.NewRouter(n.app, reg, conf.Debug)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return rpcserver.Serve(ctx, conf, router, n.logger.With("module", "rpc"))
		},
	}
	cmd.Flags().String(flagListen, "", "address the server listens on, overrides the config")
	cmd.Flags().Bool(flagDebug, false, "return internal error details to clients")
	return cmd
}
