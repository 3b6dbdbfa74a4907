// Package sqlschema holds SQL-specific settings of converted models.
//
// Foreign key cascade actions read from the source schema are carried on
// edges and rendered as:
//
//	edge.ForeignKey("user", User.Type).
//	    OnUpdate(sqlschema.Cascade).
//	    OnDelete(sqlschema.SetNull)
//
// # Cascade Actions
//
//	sqlschema.Cascade    - Delete/update related rows
//	sqlschema.SetNull    - Set foreign key to NULL
//	sqlschema.Restrict   - Prevent delete/update if related rows exist
//	sqlschema.SetDefault - Set foreign key to default value
//	sqlschema.NoAction   - No action (database default)
package sqlschema

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"
)

// CascadeAction defines cascade behavior for foreign key constraints.
type CascadeAction string

const (
	Cascade    CascadeAction = "CASCADE"
	SetNull    CascadeAction = "SET NULL"
	Restrict   CascadeAction = "RESTRICT"
	SetDefault CascadeAction = "SET DEFAULT"
	NoAction   CascadeAction = "NO ACTION"
)

var constNames = map[CascadeAction]string{
	Cascade:    "Cascade",
	SetNull:    "SetNull",
	Restrict:   "Restrict",
	SetDefault: "SetDefault",
	NoAction:   "NoAction",
}

// ParseCascadeAction parses an action as written in SQL. The empty string
// parses to the empty action.
func ParseCascadeAction(s string) (CascadeAction, error) {
	a := CascadeAction(strings.ToUpper(strings.Join(strings.Fields(s), " ")))
	if a == "" {
		return "", nil
	}
	if _, ok := constNames[a]; !ok {
		return "", fmt.Errorf("sqlschema: unknown cascade action %q", s)
	}
	return a, nil
}

// FromReferenceOption converts an atlas foreign-key reference option.
func FromReferenceOption(o schema.ReferenceOption) (CascadeAction, error) {
	return ParseCascadeAction(string(o))
}

// ConstName returns the name of the package constant of the action, or ""
// if a is not a known action.
func (a CascadeAction) ConstName() string {
	return constNames[a]
}

// String returns the SQL form of the action.
func (a CascadeAction) String() string { return string(a) }
