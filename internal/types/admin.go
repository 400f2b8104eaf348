package types

import (
	"fmt"
)

// AdminType distinguishes the bootstrap admin from admins added later.
// The source convention is "main" for the first admin and "no" for every
// other admin record; the main admin can never be removed.
type AdminType string

const (
	AdminTypeMain    AdminType = "main"
	AdminTypeRegular AdminType = "no"
)

func (t AdminType) String() string {
	return string(t)
}

func (t AdminType) Validate() error {
	if t != AdminTypeMain && t != AdminTypeRegular {
		return fmt.Errorf("invalid admin type: %s", t)
	}
	return nil
}

// IsMain reports whether the record is the protected bootstrap admin
func (t AdminType) IsMain() bool {
	return t == AdminTypeMain
}
