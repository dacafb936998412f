// Package vecerr defines the coded errors shared by every vecplot package.
// Errors are built with github.com/samber/oops and carry a machine-readable
// Code of the form area.operation.reason plus structured fields (token
// names, indices, dimensions) that callers can inspect via FieldsOf.
package vecerr
