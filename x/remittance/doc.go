/*
Package remittance implements a hash-lock escrow.

Basically a remittance is a case of escrow: funds are locked under a
commitment and can only be released by someone who knows how that
commitment was made.

What happens here is funds are being held in an escrow account that is
derived from the commitment. The commitment is a blake2b-256 hash of the
recipient identifier followed by a secret password. The funds can either be
claimed by revealing the recipient and the password, or returned to the
remitter at any time before they are claimed.

The algorithm is as follows:
1. Remitter picks a password and shares it with the recipient out of band.
2. Remitter computes the commitment of (recipient, password), see Commit.
3. With this commitment remitter makes a Deposit. The value is moved to the
escrow account of the commitment.
4. Anyone presenting the (recipient, password) pair can Claim. The value is
moved to the account of the recipient.
5. Until then, the remitter can Withdraw the value back.
6. The deposit is deleted on successful claim or withdraw. A commitment can
be locked again only after that.
*/
package remittance
