package fleet

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/intermernet/battery-registry/internal/database"
)

// BatteryInput holds the client-supplied fields of a battery.
// GroupID is nil for an ungrouped battery.
type BatteryInput struct {
	Name      string
	Latitude  float64
	Longitude float64
	SetupDate string
	Level     int64
	Capacity  int64
	GroupID   *int64
}

func (in BatteryInput) values() database.BatteryValues {
	v := database.BatteryValues{
		Name:      in.Name,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		SetupDate: in.SetupDate,
		Level:     in.Level,
		Capacity:  in.Capacity,
	}
	if in.GroupID != nil {
		v.GroupID = sql.NullInt64{Int64: *in.GroupID, Valid: true}
	}
	return v
}

// BatteryService implements CRUD and filtered listings for batteries.
type BatteryService struct {
	db  *database.Service
	log logrus.FieldLogger
}

// NewBatteryService returns a BatteryService backed by db.
func NewBatteryService(db *database.Service, log logrus.FieldLogger) *BatteryService {
	return &BatteryService{db: db, log: log}
}

// Create inserts a battery and returns it as stored. A group_id that names
// no group yields a *StoreError.
func (s *BatteryService) Create(ctx context.Context, in BatteryInput) (*database.Battery, error) {
	var battery *database.Battery
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		id, err := s.db.InsertBattery(ctx, tx, in.values())
		if err != nil {
			return err
		}
		battery, err = s.db.GetBatteryByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify("create battery", err)
	}

	s.log.WithField("battery_id", battery.ID).Info("battery created")
	return battery, nil
}

// Get returns ErrNotFound if the battery does not exist.
func (s *BatteryService) Get(ctx context.Context, id int64) (*database.Battery, error) {
	battery, err := s.db.GetBatteryByID(ctx, s.db.DB(), id)
	if err != nil {
		return nil, classify("get battery", err)
	}
	return battery, nil
}

// List returns all batteries in insertion order.
func (s *BatteryService) List(ctx context.Context) ([]database.Battery, error) {
	batteries, err := s.db.ListBatteries(ctx, s.db.DB())
	if err != nil {
		return nil, classify("list batteries", err)
	}
	return batteries, nil
}

// ListBySetupDate returns batteries whose setup date equals date exactly.
func (s *BatteryService) ListBySetupDate(ctx context.Context, date string) ([]database.Battery, error) {
	batteries, err := s.db.ListBatteriesBySetupDate(ctx, s.db.DB(), date)
	if err != nil {
		return nil, classify("list batteries by setup date", err)
	}
	return batteries, nil
}

// ListByGroup returns the batteries assigned to groupID, possibly none.
func (s *BatteryService) ListByGroup(ctx context.Context, groupID int64) ([]database.Battery, error) {
	batteries, err := s.db.ListBatteriesByGroupID(ctx, s.db.DB(), groupID)
	if err != nil {
		return nil, classify("list batteries by group", err)
	}
	return batteries, nil
}

// Update replaces every mutable field except the group assignment, which
// in.GroupID cannot change, and returns the stored row.
func (s *BatteryService) Update(ctx context.Context, id int64, in BatteryInput) (*database.Battery, error) {
	var battery *database.Battery
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		n, err := s.db.UpdateBattery(ctx, tx, id, in.values())
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		battery, err = s.db.GetBatteryByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify("update battery", err)
	}

	s.log.WithField("battery_id", id).Info("battery updated")
	return battery, nil
}

// Delete removes the battery. Deleting a missing battery is not an error.
func (s *BatteryService) Delete(ctx context.Context, id int64) error {
	var n int64
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		var err error
		n, err = s.db.DeleteBattery(ctx, tx, id)
		return err
	})
	if err != nil {
		return classify("delete battery", err)
	}

	if n > 0 {
		s.log.WithField("battery_id", id).Info("battery deleted")
	}
	return nil
}
