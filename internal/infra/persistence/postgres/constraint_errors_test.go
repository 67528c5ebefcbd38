package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_tr_key"}
	wrapped := fmt.Errorf("insert: %w", unique)

	assert.True(t, isUniqueConstraintViolation(wrapped))
	assert.False(t, isForeignKeyConstraintViolation(wrapped))
	assert.Equal(t, "categories_name_tr_key", constraintName(wrapped))

	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: "23502"}))
	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: "23514"}))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))

	plain := fmt.Errorf("connection reset")
	assert.False(t, isUniqueConstraintViolation(plain))
	assert.False(t, isCheckConstraintViolation(plain))
	assert.Empty(t, constraintName(plain))
}
