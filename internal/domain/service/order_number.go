package service

// OrderNumberGenerator produces human-facing order numbers.
type OrderNumberGenerator interface {
	Next() string
}
