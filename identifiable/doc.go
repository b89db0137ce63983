// Package identifiable gives records a random public identifier alongside
// their primary key.
//
// A record type is registered once with the column that holds the identifier,
// a style (numeric, alphanumeric or uuid) and a length:
//
//	users := identifiable.MustRegister(schema,
//		identifiable.WithColumn("public_id"),
//		identifiable.WithStyle(stylist.Alphanumeric),
//		identifiable.WithLength(12),
//	)
//
// Registration validates the declaration and fails fast. Before a record is
// inserted, Assign (or Assigner.Ensure from a storage hook) draws candidates
// and checks each against storage, up to MaxAttempts times, and sets the first
// unused one. A record that already carries an identifier is left alone.
//
// Uniqueness is only checked at a point in time. Put a unique constraint on the
// column so concurrent inserts of the same candidate fail loudly.
package identifiable
