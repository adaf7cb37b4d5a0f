//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can run in parallel and never see each other's rows.
//
// # Basic Usage
//
//	func TestSomething(t *testing.T) {
//		t.Parallel()
//		db := testdb.GetTestDBWithT(t)
//
//		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//			taskStore := postgres.NewPostgresTaskStore(tx, nil)
//			// ...
//		})
//	}
//
// Tests are skipped when neither DATABASE_URL nor TASKS_TEST_DB_URL is set.
package testdb
