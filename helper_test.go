// FILE: lixenwraith/typeconv/helper_test.go
package typeconv

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Role is an enum parsed by name
type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleAdmin
)

var roleNames = map[string]Role{
	"Guest":  RoleGuest,
	"Member": RoleMember,
	"Admin":  RoleAdmin,
}

func (r Role) String() string {
	for name, v := range roleNames {
		if v == r {
			return name
		}
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r *Role) UnmarshalText(text []byte) error {
	v, ok := roleNames[string(text)]
	if !ok {
		return fmt.Errorf("unknown role %q", string(text))
	}
	*r = v
	return nil
}

type Address struct {
	City string
}

type Audit struct {
	Created time.Time  `db:"created"`
	Updated *time.Time `db:"updated"`
}

type User struct {
	Audit
	ID      int64         `db:"id"`
	Name    string        `db:"name"`
	Age     int32         `db:"age"`
	Score   float64       `db:"score"`
	Active  bool          `db:"active"`
	Role    Role          `db:"role"`
	Email   *string       `db:"email"`
	Limit   *int          `db:"limit"`
	Timeout time.Duration `db:"timeout"`
	Home    *Address      `db:"home"`
	Tags    []string      `db:"tags"`
	Secret  string        `db:"-"`
	note    string
}

var userColumns = []string{
	"id", "name", "age", "score", "active", "role", "email", "limit", "timeout", "home", "tags", "created", "updated",
}

// newUserTable returns a table with every user column and one row per value set
func newUserTable(t *testing.T, rows ...[]any) *MemTable {
	t.Helper()
	table := NewTable(userColumns...)
	for _, values := range rows {
		_, err := table.AddRow(values...)
		require.NoError(t, err)
	}
	return table
}

// fullUserRow returns loosely typed cells for every user column
func fullUserRow() []any {
	return []any{
		"7",              // id
		"ann",            // name
		int64(30),        // age
		"9.5",            // score
		"true",           // active
		" Admin ",        // role
		"ann@example.io", // email
		"5",              // limit
		"1m30s",          // timeout
		"somewhere",      // home (unsupported)
		"a,b",            // tags (unsupported)
		"2024-03-01 10:00:00",
		Missing,
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
