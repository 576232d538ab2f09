package rpcserver

import (
	"net/http"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/remittance"
)

// ServiceName is the prefix of all methods, e.g. "remit.Puzzle".
const ServiceName = "remit"

// Ledger is the read side of the app served over the API.
type Ledger interface {
	Puzzle(recipient, password string) (string, error)
	GetDeposit(c remittance.Commitment) (*remittance.Deposit, error)
	Deposits() ([]remittance.DepositEntry, error)
	Balance(addr remit.Address) (coin.Amount, error)
}

// RPCAPI is the JSON-RPC service.
type RPCAPI struct {
	ledger Ledger
	debug  bool
}

// NullArgs null args
type NullArgs struct{}

// PuzzleArgs are the inputs of a commitment.
type PuzzleArgs struct {
	Recipient string `json:"recipient"`
	Password  string `json:"password"`
}

// CommitmentArgs selects a deposit.
type CommitmentArgs struct {
	Commitment string `json:"commitment"`
}

// AddressArgs selects an account.
type AddressArgs struct {
	Address string `json:"address"`
}

// DepositResult describes a live deposit.
type DepositResult struct {
	Commitment    string        `json:"commitment"`
	Remitter      remit.Address `json:"remitter"`
	Value         string        `json:"value"`
	EscrowAccount remit.Address `json:"escrow_account"`
}

// BalanceResult is the balance of an account.
type BalanceResult struct {
	Address remit.Address `json:"address"`
	Balance string        `json:"balance"`
}

// Puzzle api
func (s *RPCAPI) Puzzle(r *http.Request, args *PuzzleArgs, result *string) error {
	p, err := s.ledger.Puzzle(args.Recipient, args.Password)
	if err != nil {
		return s.fail(err)
	}
	*result = p
	return nil
}

// GetDeposit api
func (s *RPCAPI) GetDeposit(r *http.Request, args *CommitmentArgs, result *DepositResult) error {
	c, err := remittance.ParseCommitment(args.Commitment)
	if err != nil {
		return s.fail(err)
	}
	d, err := s.ledger.GetDeposit(c)
	if err != nil {
		return s.fail(err)
	}
	*result = NewDepositResult(c, d)
	return nil
}

// ListDeposits api
func (s *RPCAPI) ListDeposits(r *http.Request, args *NullArgs, result *[]DepositResult) error {
	entries, err := s.ledger.Deposits()
	if err != nil {
		return s.fail(err)
	}
	res := make([]DepositResult, 0, len(entries))
	for _, e := range entries {
		res = append(res, NewDepositResult(e.Commitment, e.Deposit))
	}
	*result = res
	return nil
}

// EscrowAccount api
func (s *RPCAPI) EscrowAccount(r *http.Request, args *CommitmentArgs, result *remit.Address) error {
	c, err := remittance.ParseCommitment(args.Commitment)
	if err != nil {
		return s.fail(err)
	}
	*result = remittance.EscrowAccount(c)
	return nil
}

// Balance api
func (s *RPCAPI) Balance(r *http.Request, args *AddressArgs, result *BalanceResult) error {
	addr, err := remit.ParseAddress(args.Address)
	if err != nil {
		return s.fail(err)
	}
	b, err := s.ledger.Balance(addr)
	if err != nil {
		return s.fail(err)
	}
	*result = BalanceResult{Address: addr, Balance: b.String()}
	return nil
}

// Version api
func (s *RPCAPI) Version(r *http.Request, args *NullArgs, result *string) error {
	*result = remit.Version()
	return nil
}

// NewDepositResult describes the deposit locked under c.
func NewDepositResult(c remittance.Commitment, d *remittance.Deposit) DepositResult {
	return DepositResult{
		Commitment:    c.String(),
		Remitter:      d.RemitterAddress(),
		Value:         d.Amount().String(),
		EscrowAccount: remittance.EscrowAccount(c),
	}
}

// fail converts err into a JSON-RPC error carrying the error code. Unless
// debugging, errors without a registered code and recovered panics are
// reported as internal errors.
func (s *RPCAPI) fail(err error) error {
	code, msg := errors.Response(errors.Redact(err, s.debug), s.debug)
	return &json2.Error{
		Code:    json2.ErrorCode(code),
		Message: msg,
	}
}
