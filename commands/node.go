package commands

import (
	"encoding/json"
	"io"

	"github.com/iov-one/remit/app"
	"github.com/iov-one/remit/config"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/store"
	"github.com/iov-one/remit/x/cash"
	"github.com/iov-one/remit/x/remittance"
	"github.com/spf13/cobra"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

// node is an app opened on the home directory of the command.
type node struct {
	home   string
	conf   *config.Config
	db     *store.LevelDB
	app    *app.App
	logger log.Logger
}

// openNode loads the config and the database. Events of committed
// transactions are logged and emitted to the extra sinks.
func openNode(cmd *cobra.Command, sinks ...remittance.EventSink) (*node, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return nil, err
	}
	conf, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), conf.LogLevel)
	if err != nil {
		return nil, err
	}
	controller, err := cash.NewControllerFromConfig(conf.Cash)
	if err != nil {
		return nil, err
	}
	db, err := store.OpenLevelDB(conf.DBPath(home))
	if err != nil {
		return nil, err
	}

	sink := append(remittance.MultiSink{remittance.NewLogSink(logger)}, sinks...)
	a := app.New(db, controller, remittance.AddressResolver, sink).
		WithLogger(logger.With("module", "app"))
	return &node{
		home:   home,
		conf:   conf,
		db:     db,
		app:    a,
		logger: logger,
	}, nil
}

func (n *node) Close() error {
	return n.db.Close()
}

// withNode opens the node for the duration of fn.
func withNode(cmd *cobra.Command, fn func(n *node) error) error {
	n, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()
	return fn(n)
}

// newLogger returns a tendermint logger filtered by a level string such as
// "info" or "app:debug,*:error".
func newLogger(w io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	logger, err := tmflags.ParseLogLevel(level, logger, "info")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return logger, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
