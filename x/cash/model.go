package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the persisted balance of a single account.
type Wallet struct {
	Balance uint64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ proto.Message = (*Wallet)(nil)

func (w *Wallet) Reset()         { *w = Wallet{} }
func (w *Wallet) String() string { return proto.CompactTextString(w) }
func (*Wallet) ProtoMessage()    {}

// Amount returns the wallet balance.
func (w *Wallet) Amount() coin.Amount {
	return coin.Amount(w.Balance)
}

// IsEmpty is true when the wallet holds nothing and can be removed.
func (w *Wallet) IsEmpty() bool {
	return w.Balance == 0
}

// Bucket stores wallets keyed by the account address.
type Bucket struct {
	prefix []byte
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		prefix: []byte(BucketName + ":"),
	}
}

func (b Bucket) dbKey(addr remit.Address) []byte {
	key := make([]byte, 0, len(b.prefix)+len(addr))
	key = append(key, b.prefix...)
	return append(key, addr...)
}

// Get returns the wallet of the address or nil if it does not exist.
func (b Bucket) Get(db remit.ReadOnlyKVStore, addr remit.Address) (*Wallet, error) {
	raw, err := db.Get(b.dbKey(addr))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var w Wallet
	if err := proto.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal wallet: %s", err)
	}
	return &w, nil
}

// GetOrCreate returns the wallet of the address, an empty one if it does
// not exist yet.
func (b Bucket) GetOrCreate(db remit.ReadOnlyKVStore, addr remit.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err == nil && w == nil {
		w = &Wallet{}
	}
	return w, err
}

// Save stores the wallet. An empty wallet is deleted instead.
func (b Bucket) Save(db remit.KVStore, addr remit.Address, w *Wallet) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	if w.IsEmpty() {
		return db.Delete(b.dbKey(addr))
	}
	raw, err := proto.Marshal(w)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal wallet: %s", err)
	}
	return db.Set(b.dbKey(addr), raw)
}
