package remittance

import (
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Event kinds, as returned by Event.Kind
const (
	KindDeposit  = "deposit"
	KindTransfer = "transfer"
	KindWithdraw = "withdraw"
)

// Event is a notification of a completed ledger operation. It is one of
// DepositEvent, TransferEvent or WithdrawEvent.
type Event interface {
	Kind() string
	// KeyVals returns the event content as logger key value pairs.
	KeyVals() []interface{}

	event()
}

// DepositEvent is emitted when value is locked under a commitment.
type DepositEvent struct {
	Remitter   remit.Address
	Commitment Commitment
	Value      coin.Amount
}

func (DepositEvent) Kind() string { return KindDeposit }
func (DepositEvent) event()       {}

func (e DepositEvent) KeyVals() []interface{} {
	return []interface{}{
		"remitter", e.Remitter,
		"commitment", e.Commitment,
		"value", e.Value,
	}
}

// TransferEvent is emitted when a deposit is claimed. Account is where the
// value was moved to.
type TransferEvent struct {
	Commitment Commitment
	Recipient  []byte
	Account    remit.Address
	Value      coin.Amount
}

func (TransferEvent) Kind() string { return KindTransfer }
func (TransferEvent) event()       {}

func (e TransferEvent) KeyVals() []interface{} {
	return []interface{}{
		"commitment", e.Commitment,
		"recipient", string(e.Recipient),
		"account", e.Account,
		"value", e.Value,
	}
}

// WithdrawEvent is emitted when the remitter takes a deposit back.
type WithdrawEvent struct {
	Remitter   remit.Address
	Commitment Commitment
	Value      coin.Amount
}

func (WithdrawEvent) Kind() string { return KindWithdraw }
func (WithdrawEvent) event()       {}

func (e WithdrawEvent) KeyVals() []interface{} {
	return []interface{}{
		"remitter", e.Remitter,
		"commitment", e.Commitment,
		"value", e.Value,
	}
}

// EventSink receives events of completed operations. Emit failure never
// undoes the operation the event describes.
type EventSink interface {
	Emit(Event) error
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(Event) error

func (fn SinkFunc) Emit(e Event) error {
	return fn(e)
}

// EventBuffer keeps events of a running transaction until it is known
// whether the transaction is committed.
type EventBuffer struct {
	events []Event
}

var _ EventSink = (*EventBuffer)(nil)

// Emit implements EventSink and never fails.
func (b *EventBuffer) Emit(e Event) error {
	b.events = append(b.events, e)
	return nil
}

// Events returns all buffered events in emission order.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Reset drops all buffered events.
func (b *EventBuffer) Reset() {
	b.events = nil
}

// FlushTo emits all buffered events to the sink and empties the buffer.
// Every event is delivered even if the sink fails on some of them, the
// first failure is returned.
func (b *EventBuffer) FlushTo(sink EventSink) error {
	var first error
	for _, e := range b.events {
		if err := sink.Emit(e); err != nil && first == nil {
			first = errors.Wrapf(err, "emit %s", e.Kind())
		}
	}
	b.events = nil
	return first
}

// MultiSink fans events out to all sinks.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) error {
	var first error
	for _, s := range m {
		if err := s.Emit(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LogSink writes every event to the logger at info level.
type LogSink struct {
	logger log.Logger
}

// NewLogSink returns a sink logging with given logger.
func NewLogSink(logger log.Logger) LogSink {
	return LogSink{logger: logger.With("module", "remittance")}
}

func (s LogSink) Emit(e Event) error {
	s.logger.Info(e.Kind(), e.KeyVals()...)
	return nil
}
