package database

import "database/sql"

// Group represents a record in the "group" table.
type Group struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Battery represents a record in the battery table.
// GroupID is NULL for batteries that have not been assigned to a group.
type Battery struct {
	ID        int64         `db:"id"`
	Name      string        `db:"name"`
	Latitude  float64       `db:"latitude"`
	Longitude float64       `db:"longitude"`
	SetupDate string        `db:"setup_date"`
	Level     int64         `db:"level"`
	Capacity  int64         `db:"capacity"`
	GroupID   sql.NullInt64 `db:"group_id"`
}

// GroupValues holds the writable columns of a group row.
type GroupValues struct {
	Name string
}

// BatteryValues holds the writable columns of a battery row.
type BatteryValues struct {
	Name      string
	Latitude  float64
	Longitude float64
	SetupDate string
	Level     int64
	Capacity  int64
	GroupID   sql.NullInt64
}
