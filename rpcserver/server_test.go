package rpcserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/app"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/metrics"
	"github.com/iov-one/remit/remittest"
	"github.com/iov-one/remit/store"
	"github.com/iov-one/remit/x/cash"
	"github.com/iov-one/remit/x/remittance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	resolver := remittance.ResolverFunc(func(recipient []byte) (remit.Address, error) {
		return remittest.NamedAddress(string(recipient)), nil
	})
	a := app.New(store.MemStore(), cash.NewController(0), resolver, m)
	bob := remittest.NamedAddress("bob")
	require.NoError(t, a.InitGenesis([]cash.GenesisAccount{
		{Address: bob.String(), Amount: "1000"},
	}))

	router, err := NewRouter(a, reg, false)
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, a
}

func call(t *testing.T, srv *httptest.Server, method string, args, reply interface{}) error {
	t.Helper()
	body, err := json2.EncodeClientRequest(ServiceName+"."+method, args)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	return json2.DecodeClientResponse(resp.Body, reply)
}

func TestPuzzle(t *testing.T) {
	srv, _ := newTestServer(t)

	var p string
	require.NoError(t, call(t, srv, "Puzzle", &PuzzleArgs{Recipient: "alice", Password: "s3cret"}, &p))
	assert.Equal(t, "a7d76b21cce016b1cc7abd5897126d4eb0ab6fc7f18bb8c173fe1aa1f480aed3", p)

	err := call(t, srv, "Puzzle", &PuzzleArgs{Recipient: "", Password: "s3cret"}, &p)
	require.Error(t, err)
	jerr, ok := err.(*json2.Error)
	require.True(t, ok, "%T", err)
	assert.Equal(t, json2.ErrorCode(1000), jerr.Code)
}

func TestDepositQueries(t *testing.T) {
	srv, a := newTestServer(t)
	bob := remittest.NamedAddress("bob")

	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)

	var d DepositResult
	err = call(t, srv, "GetDeposit", &CommitmentArgs{Commitment: c.String()}, &d)
	jerr, ok := err.(*json2.Error)
	require.True(t, ok, "%T", err)
	assert.Equal(t, json2.ErrorCode(1003), jerr.Code)

	require.NoError(t, a.Deposit(context.Background(), bob, c, 100))

	require.NoError(t, call(t, srv, "GetDeposit", &CommitmentArgs{Commitment: c.String()}, &d))
	assert.Equal(t, c.String(), d.Commitment)
	assert.Equal(t, bob, d.Remitter)
	assert.Equal(t, "100", d.Value)
	assert.Equal(t, remittance.EscrowAccount(c), d.EscrowAccount)

	var list []DepositResult
	require.NoError(t, call(t, srv, "ListDeposits", &NullArgs{}, &list))
	require.Len(t, list, 1)
	assert.Equal(t, d, list[0])

	var escrow remit.Address
	require.NoError(t, call(t, srv, "EscrowAccount", &CommitmentArgs{Commitment: c.String()}, &escrow))
	assert.Equal(t, "D32ECC29B494657E4D6D03BCC773A15C770AD1C3", escrow.String())

	var b BalanceResult
	require.NoError(t, call(t, srv, "Balance", &AddressArgs{Address: bob.String()}, &b))
	assert.Equal(t, "900", b.Balance)

	err = call(t, srv, "Balance", &AddressArgs{Address: "nope"}, &b)
	require.Error(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, a := newTestServer(t)
	bob := remittest.NamedAddress("bob")
	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	require.NoError(t, a.Deposit(context.Background(), bob, c, 100))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `remit_events_total{kind="deposit"} 1`)
}

func TestRPCRejectsGet(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/rpc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// brokenLedger fails every query the way a crashing store would.
type brokenLedger struct {
	Ledger
}

func (brokenLedger) Balance(remit.Address) (coin.Amount, error) {
	return 0, errors.Wrap(errors.ErrPanic, "boom")
}

func (brokenLedger) Deposits() ([]remittance.DepositEntry, error) {
	return nil, rawError("disk on fire")
}

type rawError string

func (e rawError) Error() string { return string(e) }

func TestInternalErrorsAreRedacted(t *testing.T) {
	cases := map[string]struct {
		debug    bool
		method   string
		args     interface{}
		wantCode json2.ErrorCode
		wantMsg  string
	}{
		"panic": {
			method:   "Balance",
			args:     &AddressArgs{Address: remittest.NamedAddress("bob").String()},
			wantCode: 1,
			wantMsg:  "internal error",
		},
		"panic in debug mode": {
			debug:    true,
			method:   "Balance",
			args:     &AddressArgs{Address: remittest.NamedAddress("bob").String()},
			wantCode: json2.ErrorCode(errors.ErrPanic.Code()),
			wantMsg:  "boom",
		},
		"unregistered error": {
			method:   "ListDeposits",
			args:     &NullArgs{},
			wantCode: 1,
			wantMsg:  "internal error",
		},
		"unregistered error in debug mode": {
			debug:    true,
			method:   "ListDeposits",
			args:     &NullArgs{},
			wantCode: 1,
			wantMsg:  "disk on fire",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			router, err := NewRouter(brokenLedger{}, prometheus.NewRegistry(), tc.debug)
			require.NoError(t, err)
			srv := httptest.NewServer(router)
			defer srv.Close()

			var reply interface{}
			err = call(t, srv, tc.method, tc.args, &reply)
			jerr, ok := err.(*json2.Error)
			require.True(t, ok, "%T", err)
			assert.Equal(t, tc.wantCode, jerr.Code)
			assert.Contains(t, jerr.Message, tc.wantMsg)
		})
	}
}
