package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBorTx is an interface that allows functions to accept either a `*sqlx.DB` for single queries
// or a `*sqlx.Tx` for operations within a transaction. This promotes code reuse.
type DBorTx interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

const groupColumns = `id, name`

const batteryColumns = `id, name, latitude, longitude, setup_date, level, capacity, group_id`

// --- Group Queries ---

// InsertGroup inserts a group row and returns the generated id.
func (s *Service) InsertGroup(ctx context.Context, db DBorTx, v GroupValues) (int64, error) {
	res, err := db.ExecContext(ctx, `INSERT INTO "group" (name) VALUES (?);`, v.Name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetGroupByID returns sql.ErrNoRows if no group has the given id.
func (s *Service) GetGroupByID(ctx context.Context, db DBorTx, id int64) (*Group, error) {
	group := &Group{}
	err := db.GetContext(ctx, group, `SELECT `+groupColumns+` FROM "group" WHERE id = ?;`, id)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns every group in insertion order.
func (s *Service) ListGroups(ctx context.Context, db DBorTx) ([]Group, error) {
	groups := []Group{}
	err := db.SelectContext(ctx, &groups, `SELECT `+groupColumns+` FROM "group" ORDER BY id;`)
	return groups, err
}

// UpdateGroup replaces the mutable columns of a group and reports how many rows matched.
func (s *Service) UpdateGroup(ctx context.Context, db DBorTx, id int64, v GroupValues) (int64, error) {
	res, err := db.ExecContext(ctx, `UPDATE "group" SET name = ? WHERE id = ?;`, v.Name, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteGroup removes a group and reports how many rows were deleted.
func (s *Service) DeleteGroup(ctx context.Context, db DBorTx, id int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM "group" WHERE id = ?;`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Battery Queries ---

// InsertBattery inserts a battery row and returns the generated id.
func (s *Service) InsertBattery(ctx context.Context, db DBorTx, v BatteryValues) (int64, error) {
	query := `INSERT INTO battery (name, latitude, longitude, setup_date, level, capacity, group_id)
			  VALUES (?, ?, ?, ?, ?, ?, ?);`
	res, err := db.ExecContext(ctx, query, v.Name, v.Latitude, v.Longitude, v.SetupDate, v.Level, v.Capacity, v.GroupID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetBatteryByID returns sql.ErrNoRows if no battery has the given id.
func (s *Service) GetBatteryByID(ctx context.Context, db DBorTx, id int64) (*Battery, error) {
	battery := &Battery{}
	err := db.GetContext(ctx, battery, `SELECT `+batteryColumns+` FROM battery WHERE id = ?;`, id)
	if err != nil {
		return nil, err
	}
	return battery, nil
}

// ListBatteries returns every battery in insertion order.
func (s *Service) ListBatteries(ctx context.Context, db DBorTx) ([]Battery, error) {
	return s.selectBatteries(ctx, db, `SELECT `+batteryColumns+` FROM battery ORDER BY id;`)
}

// ListBatteriesBySetupDate returns the batteries whose setup_date matches exactly.
func (s *Service) ListBatteriesBySetupDate(ctx context.Context, db DBorTx, setupDate string) ([]Battery, error) {
	return s.selectBatteries(ctx, db, `SELECT `+batteryColumns+` FROM battery WHERE setup_date = ? ORDER BY id;`, setupDate)
}

// ListBatteriesByGroupID returns the batteries assigned to a group.
func (s *Service) ListBatteriesByGroupID(ctx context.Context, db DBorTx, groupID int64) ([]Battery, error) {
	return s.selectBatteries(ctx, db, `SELECT `+batteryColumns+` FROM battery WHERE group_id = ? ORDER BY id;`, groupID)
}

// UpdateBattery replaces the mutable columns of a battery. group_id is left
// untouched; reassignment is not part of the update contract.
func (s *Service) UpdateBattery(ctx context.Context, db DBorTx, id int64, v BatteryValues) (int64, error) {
	query := `UPDATE battery
			  SET name = ?, latitude = ?, longitude = ?, setup_date = ?, level = ?, capacity = ?
			  WHERE id = ?;`
	res, err := db.ExecContext(ctx, query, v.Name, v.Latitude, v.Longitude, v.SetupDate, v.Level, v.Capacity, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBattery removes a battery and reports how many rows were deleted.
func (s *Service) DeleteBattery(ctx context.Context, db DBorTx, id int64) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM battery WHERE id = ?;`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Service) selectBatteries(ctx context.Context, db DBorTx, query string, args ...interface{}) ([]Battery, error) {
	batteries := []Battery{}
	if err := db.SelectContext(ctx, &batteries, query, args...); err != nil {
		return nil, err
	}
	return batteries, nil
}
