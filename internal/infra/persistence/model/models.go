// Package model holds the GORM table mappings of the persistence layer.
package model

// All lists every model managed by schema migration, parents first.
func All() []any {
	return []any{
		&UserModel{},
		&TaskModel{},
	}
}
