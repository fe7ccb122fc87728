// Package testdb provides database helpers for tests.
//
// Every database handed out is a private in-memory SQLite database with the
// embedded migrations applied, so tests can run in parallel without sharing
// rows. Use WithTx when a test wants its writes rolled back.
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
