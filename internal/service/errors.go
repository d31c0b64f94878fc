package service

import "errors"

// ErrProductNotFound is returned when a referenced product id does not exist.
var ErrProductNotFound = errors.New("produk tidak ditemukan")

// ErrInvalidCredentials is returned on a failed login. The message never
// distinguishes a bad username from a bad password.
var ErrInvalidCredentials = errors.New("username atau password salah")

// ValidationError carries the field→message set for a rejected input.
// No mutation has happened when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validasi gagal" }

// StorageError wraps an infrastructural failure in the blob store or the
// database. Handlers surface it as a generic server error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
