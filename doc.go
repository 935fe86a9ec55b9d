// FILE: lixenwraith/typeconv/doc.go

// Package typeconv converts loosely typed values into typed model structs and back.
// It is a mapping layer for data-access code: rows from a table, form-like key/value
// collections and boxed scalars are coerced into struct fields without hand-written
// per-field conversion code.
//
// Features:
//   - Row, table and key/value collection sources feeding one coercion engine
//   - Nullable fields via pointers, enums parsed by name, time and duration fields
//   - Field maps, ignore lists and "only mapped" selection per call
//   - Model to row write-back with enums stored as their ordinal
//   - Shallow same-name projection between struct types
//   - Best-effort scalar converters that fall back to a caller default
//   - Mapping profiles in TOML, YAML or JSON
//
// Quick Start:
//
//	type User struct {
//	    ID     int64     `db:"id"`
//	    Name   string    `db:"name"`
//	    Role   Role      `db:"role"` // *Role implements encoding.TextUnmarshaler
//	    Joined time.Time `db:"joined"`
//	    Email  *string   `db:"email"`
//	}
//
//	table := typeconv.NewTable("id", "name", "role", "joined", "email")
//	table.AddRow(int64(7), "ann", "Admin", "2024-03-01 10:00:00", typeconv.Missing)
//
//	users, err := typeconv.FromTable[User](table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Failure Policy:
// A missing column, an absent cell or an unsupported field type is skipped and the
// field keeps its default. A value that cannot be converted fails the whole unit:
// FromRow returns a nil model, FromTable returns no list. The scalar helpers
// (ToInt, ToBool, ToDateTime, ...) never fail and return the caller default instead.
//
// Thread Safety:
// A Converter is immutable after construction apart from its schema memo, which is
// safe for concurrent use. Rows and targets passed in are owned by the caller.
package typeconv
