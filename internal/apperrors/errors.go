package apperrors

import "errors"

// ErrNotFound indicates that a referenced supplier, customer, purchase,
// sale, payment or receipt does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (non-positive amount, invalid payment mode, overpayment past the
// outstanding balance, mismatched supplier/purchase link).
var ErrValidation = errors.New("validation error")

// ErrConflict indicates a uniqueness violation (duplicate supplier or
// customer name) or a protected delete (existing transactions reference
// the record).
var ErrConflict = errors.New("resource conflict")
