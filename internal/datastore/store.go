// Package datastore persists looked-up book records, keyed uniquely by ISBN.
package datastore

// Store defines the interface for the local book record store.
//
// Records are flat field maps; the field set varies between books, so
// rows are stored schemalessly (one JSON object per row) rather than as
// a column-aligned table.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// Append inserts one record. The record must carry an "isbn" field;
	// an ISBN already present in the store is rejected with
	// *errors.DuplicateRecordError and the store is left unchanged.
	Append(record map[string]string) error

	// Has reports whether a record with the given ISBN exists
	Has(isbn string) (bool, error)

	// List returns all stored records
	List() ([]map[string]string, error)

	// Close closes the connection to the data store
	Close() error
}
