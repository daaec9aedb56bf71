// Package ownership decides who may read, modify, delete or log against a
// resource definition or log entry. It is pure: callers load the row, then
// ask Classify and Decide.
package ownership

import (
	"database/sql/driver"
	"fmt"
)

// Owner is either the system (shared default rows) or a single user. The
// zero value is System.
type Owner struct {
	userID string
}

// System returns the owner of shared default rows.
func System() Owner { return Owner{} }

// User returns an owner bound to the given user id.
func User(id string) Owner { return Owner{userID: id} }

// IsSystem reports whether the row is a system default.
func (o Owner) IsSystem() bool { return o.userID == "" }

// UserID returns the owning user id, or "" for System.
func (o Owner) UserID() string { return o.userID }

func (o Owner) String() string {
	if o.IsSystem() {
		return "system"
	}
	return "user:" + o.userID
}

// Scan maps a nullable user_id column: NULL is System.
func (o *Owner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = System()
	case string:
		*o = User(v)
	case []byte:
		*o = User(string(v))
	default:
		return fmt.Errorf("ownership: cannot scan %T into Owner", src)
	}
	return nil
}

// Value writes System as NULL.
func (o Owner) Value() (driver.Value, error) {
	if o.IsSystem() {
		return nil, nil
	}
	return o.userID, nil
}
