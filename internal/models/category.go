package models

import "database/sql"

// Category is a row of the categories table. Default categories have no owner.
type Category struct {
	CategoryID   string         `db:"category_id"`
	UserID       sql.NullString `db:"user_id"`
	Name         string         `db:"name"`
	CategoryType string         `db:"category_type"`
	Color        string         `db:"color"`
	Icon         string         `db:"icon"`
	IsDefault    bool           `db:"is_default"`
	AuditFields
}
