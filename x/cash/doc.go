/*
Package cash defines a simple single currency ledger. Every account has a
wallet holding a balance and coins can only be moved between wallets or
issued into one.

There is no logic in the coins, except that the balance of a wallet may not
go below zero and, unless the caller explicitly allows to drain it, may not
drop under the configured minimum balance. Wallets that reach zero are
removed from the store. Simple and safe.
*/
package cash
