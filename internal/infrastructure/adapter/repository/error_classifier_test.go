package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier(t *testing.T) {
	classifier := NewErrorClassifier()

	t.Run("Duplicate key errors", func(t *testing.T) {
		assert.True(t, classifier.IsDuplicateKeyError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`)))
		assert.True(t, classifier.IsDuplicateKeyError(errors.New("UNIQUE constraint failed: users.username")))
		assert.False(t, classifier.IsDuplicateKeyError(errors.New("syntax error")))
		assert.False(t, classifier.IsDuplicateKeyError(nil))
	})

	t.Run("Lock errors", func(t *testing.T) {
		assert.True(t, classifier.IsLockError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
		assert.True(t, classifier.IsLockError(errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")))
		assert.False(t, classifier.IsLockError(errors.New("record not found")))
		assert.False(t, classifier.IsLockError(nil))
	})

	t.Run("Connection errors", func(t *testing.T) {
		assert.True(t, classifier.IsConnectionError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")))
		assert.True(t, classifier.IsConnectionError(errors.New("write: broken pipe")))
		assert.True(t, classifier.IsConnectionError(errors.New("unexpected EOF")))
		assert.False(t, classifier.IsConnectionError(errors.New("syntax error")))
		assert.False(t, classifier.IsConnectionError(nil))
	})

	t.Run("Check constraint errors", func(t *testing.T) {
		assert.True(t, classifier.IsCheckConstraintError(errors.New(`ERROR: new row for relation "users" violates check constraint "chk_users_cash_non_negative" (SQLSTATE 23514)`)))
		assert.False(t, classifier.IsCheckConstraintError(errors.New("duplicate key value")))
		assert.False(t, classifier.IsCheckConstraintError(nil))
	})
}
