package store

// StoreError is a custom error type for store construction errors
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig  StoreError = "config cannot be nil"
	ErrNilReducer StoreError = "reducer cannot be nil"
)
