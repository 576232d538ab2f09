package remittance

import (
	"bytes"
	"testing"

	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/remittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestEventBufferFlush(t *testing.T) {
	c := mustCommit(t, "alice", "s3cret")
	remitter := remittest.NewAddress()

	var buf EventBuffer
	require.NoError(t, buf.Emit(DepositEvent{Remitter: remitter, Commitment: c, Value: 10}))
	require.NoError(t, buf.Emit(WithdrawEvent{Remitter: remitter, Commitment: c, Value: 10}))
	require.Len(t, buf.Events(), 2)

	var kinds []string
	failing := SinkFunc(func(e Event) error {
		kinds = append(kinds, e.Kind())
		return errors.ErrState
	})
	err := buf.FlushTo(failing)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)
	// a failing sink still gets every event
	assert.Equal(t, []string{KindDeposit, KindWithdraw}, kinds)
	assert.Empty(t, buf.Events())

	require.NoError(t, buf.Emit(DepositEvent{}))
	buf.Reset()
	assert.Empty(t, buf.Events())
}

func TestMultiSink(t *testing.T) {
	var a, b EventBuffer
	failing := SinkFunc(func(Event) error { return errors.ErrHuman })

	sink := MultiSink{&a, failing, &b}
	err := sink.Emit(TransferEvent{Value: 3})
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)
}

func TestLogSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewLogSink(log.NewTMLogger(&out))

	c := mustCommit(t, "alice", "s3cret")
	require.NoError(t, sink.Emit(TransferEvent{
		Commitment: c,
		Recipient:  []byte("alice"),
		Account:    remittest.NamedAddress("alice"),
		Value:      42,
	}))

	line := out.String()
	assert.Contains(t, line, "transfer")
	assert.Contains(t, line, "module=remittance")
	assert.Contains(t, line, "recipient=alice")
	assert.Contains(t, line, c.String())
}
