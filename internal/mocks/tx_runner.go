package mocks

import (
	"context"

	"github.com/phrazzld/quill-api/internal/store"
)

// TxRunner is a store.TxRunner that calls fn with a nil transaction and
// records how often it ran. Stores passed to services under test must
// tolerate a nil *sql.Tx, which the testify store mocks do.
type TxRunner struct {
	// Err, when set, is returned instead of running fn.
	Err error
	// Calls counts RunInTransaction invocations
	Calls int
}

// NewTxRunner returns a TxRunner that always runs fn.
func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

var _ store.TxRunner = (*TxRunner)(nil)

// RunInTransaction implements store.TxRunner
func (r *TxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	r.Calls++
	if r.Err != nil {
		return r.Err
	}
	return fn(ctx, nil)
}
