package remittance

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/remit/errors"
	"golang.org/x/crypto/blake2b"
)

// CommitmentSize is the length of a commitment in bytes.
const CommitmentSize = blake2b.Size256

// Commitment binds a recipient and a secret. It is the key of a deposit.
type Commitment [CommitmentSize]byte

// Commit returns blake2b-256(recipient || secret). Both parts are required,
// an empty one would make the commitment guessable.
func Commit(recipient, secret []byte) (Commitment, error) {
	if len(recipient) == 0 {
		return Commitment{}, errors.Wrap(ErrInvalidRequest, "recipient is required")
	}
	if len(secret) == 0 {
		return Commitment{}, errors.Wrap(ErrInvalidRequest, "secret is required")
	}
	data := make([]byte, 0, len(recipient)+len(secret))
	data = append(data, recipient...)
	data = append(data, secret...)
	return Commitment(blake2b.Sum256(data)), nil
}

// Puzzle returns the commitment of (recipient, password) as lowercase hex.
func Puzzle(recipient, password string) (string, error) {
	c, err := Commit([]byte(recipient), []byte(password))
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// ParseCommitment decodes the hex form of a commitment. Upper case and an
// optional 0x prefix are accepted.
func ParseCommitment(s string) (Commitment, error) {
	var c Commitment
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return c, errors.Wrapf(ErrInvalidRequest, "commitment %q is not hex", s)
	}
	if len(raw) != CommitmentSize {
		return c, errors.Wrapf(ErrInvalidRequest,
			"commitment has to be exactly %d bytes, got %d", CommitmentSize, len(raw))
	}
	copy(c[:], raw)
	return c, nil
}

// CommitmentFromBytes copies a raw 32 byte value into a commitment.
func CommitmentFromBytes(raw []byte) (Commitment, error) {
	var c Commitment
	if len(raw) != CommitmentSize {
		return c, errors.Wrapf(ErrInvalidRequest,
			"commitment has to be exactly %d bytes, got %d", CommitmentSize, len(raw))
	}
	copy(c[:], raw)
	return c, nil
}

// Bytes returns a copy of the raw commitment.
func (c Commitment) Bytes() []byte {
	return append([]byte(nil), c[:]...)
}

// IsZero is true for the zero value, which is never a valid commitment.
func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

// String returns the lowercase hex form.
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

func (c Commitment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Commitment) UnmarshalText(raw []byte) error {
	parsed, err := ParseCommitment(string(raw))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
