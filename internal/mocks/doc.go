// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can set expectations per
// call and assert them afterwards. Smaller collaborators, such as the
// password hasher and the transaction runner, use function fields with
// sensible defaults.
//
// Usage:
//
//	users := new(mocks.MockUserStore)
//	users.On("GetByID", mock.Anything, int64(7)).Return(user, nil)
//
//	svc := service.NewUserService(users, comments, mocks.NewMockPasswordHasher(), mocks.NewTxRunner(), nil)
//	// ...
//	users.AssertExpectations(t)
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Embed mock.Mock for stores, or use function fields for small interfaces
//  3. Return the receiver from WithTx so expectations survive transactions
package mocks
