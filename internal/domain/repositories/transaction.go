package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions. Every tree mutation that
// touches more than one row (row insert + parent ChildRef append, cascade
// deletes, renames) runs through ExecTx so the ChildRef cache can never be
// observed out of sync with the rows it mirrors.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
