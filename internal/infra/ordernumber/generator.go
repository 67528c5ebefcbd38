// Package ordernumber generates human-facing order numbers.
package ordernumber

import (
	"strings"

	"parlaseramik/internal/domain/service"

	"github.com/google/uuid"
)

const (
	prefix      = "PS-"
	tokenLength = 8
)

type uuidGenerator struct{}

// NewGenerator returns a generator of "PS-" followed by the first eight hex
// characters of a random UUID, uppercased. Collisions are left to the unique
// index on orders.order_number.
func NewGenerator() service.OrderNumberGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) Next() string {
	return prefix + strings.ToUpper(uuid.NewString()[:tokenLength])
}
