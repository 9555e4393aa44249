package repositories

import "context"

// TxFn runs with a context that carries the open transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs a site configuration write and its version
// snapshot atomically. Only the remote tier has one.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
