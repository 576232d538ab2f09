package remittance

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// BucketName is where we store the deposits
const BucketName = "deposit"

// Deposit is the record of a live escrow. Remitter is the only one allowed to
// withdraw it.
type Deposit struct {
	Remitter []byte `protobuf:"bytes,1,opt,name=remitter,proto3" json:"remitter,omitempty"`
	Value    uint64 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

var _ proto.Message = (*Deposit)(nil)

// NewDeposit creates a deposit record.
func NewDeposit(remitter remit.Address, value coin.Amount) *Deposit {
	return &Deposit{
		Remitter: remitter,
		Value:    value.Uint64(),
	}
}

func (d *Deposit) Reset()         { *d = Deposit{} }
func (d *Deposit) String() string { return proto.CompactTextString(d) }
func (*Deposit) ProtoMessage()    {}

// RemitterAddress returns the address of the depositor.
func (d *Deposit) RemitterAddress() remit.Address {
	return remit.Address(d.Remitter)
}

// Amount returns the escrowed value.
func (d *Deposit) Amount() coin.Amount {
	return coin.Amount(d.Value)
}

// Validate ensures the Deposit is valid
func (d *Deposit) Validate() error {
	if err := d.RemitterAddress().Validate(); err != nil {
		return errors.Wrap(err, "remitter")
	}
	if d.Value == 0 {
		return errors.Wrap(ErrInvalidValue, "value must be positive")
	}
	return nil
}

// Copy makes a new deposit
func (d *Deposit) Copy() *Deposit {
	return &Deposit{
		Remitter: append([]byte(nil), d.Remitter...),
		Value:    d.Value,
	}
}

// DepositEntry pairs a deposit with the commitment it is locked under.
type DepositEntry struct {
	Commitment Commitment
	Deposit    *Deposit
}

// Bucket is the only reader and writer of the deposit records. Keys are the
// raw commitment bytes under the bucket prefix.
type Bucket struct {
	prefix []byte
}

// NewBucket initializes a remittance.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		prefix: []byte(BucketName + ":"),
	}
}

func (b Bucket) dbKey(c Commitment) []byte {
	key := make([]byte, 0, len(b.prefix)+CommitmentSize)
	key = append(key, b.prefix...)
	return append(key, c[:]...)
}

// Get returns the deposit locked under the commitment, or nil if there is none.
func (b Bucket) Get(db remit.ReadOnlyKVStore, c Commitment) (*Deposit, error) {
	raw, err := db.Get(b.dbKey(c))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var d Deposit
	if err := proto.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal deposit: %s", err)
	}
	return &d, nil
}

// Has returns true if a deposit is locked under the commitment.
func (b Bucket) Has(db remit.ReadOnlyKVStore, c Commitment) (bool, error) {
	return db.Has(b.dbKey(c))
}

// Save validates and stores the deposit, overwriting any previous one.
func (b Bucket) Save(db remit.KVStore, c Commitment, d *Deposit) error {
	if err := d.Validate(); err != nil {
		return err
	}
	raw, err := proto.Marshal(d)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal deposit: %s", err)
	}
	return db.Set(b.dbKey(c), raw)
}

// Delete removes the deposit of the commitment.
func (b Bucket) Delete(db remit.KVStore, c Commitment) error {
	return db.Delete(b.dbKey(c))
}

// All returns every live deposit ordered by commitment.
func (b Bucket) All(db remit.ReadOnlyKVStore) ([]DepositEntry, error) {
	iter, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []DepositEntry
	for iter.Valid() {
		c, err := CommitmentFromBytes(iter.Key()[len(b.prefix):])
		if err != nil {
			return nil, errors.Wrap(errors.ErrModel, "malformed deposit key")
		}
		var d Deposit
		if err := proto.Unmarshal(iter.Value(), &d); err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal deposit: %s", err)
		}
		entries = append(entries, DepositEntry{Commitment: c, Deposit: &d})
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// prefixEnd returns the first key after all keys starting with prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
