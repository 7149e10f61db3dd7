package fleet

import (
	"context"

	"github.com/intermernet/battery-registry/internal/database"
)

// Extremes names the groups with the smallest and largest total capacity.
type Extremes struct {
	Min int64
	Max int64
}

// ExtremeGroups sums capacity per group and picks the lowest and highest
// totals. Batteries without a group are left out. On a tie the group seen
// first wins.
func ExtremeGroups(batteries []database.Battery) (Extremes, error) {
	totals := make(map[int64]int64)
	var order []int64
	for _, b := range batteries {
		if !b.GroupID.Valid {
			continue
		}
		id := b.GroupID.Int64
		if _, seen := totals[id]; !seen {
			order = append(order, id)
		}
		totals[id] += b.Capacity
	}
	if len(order) == 0 {
		return Extremes{}, ErrEmptyDataset
	}

	ext := Extremes{Min: order[0], Max: order[0]}
	for _, id := range order[1:] {
		if totals[id] < totals[ext.Min] {
			ext.Min = id
		}
		if totals[id] > totals[ext.Max] {
			ext.Max = id
		}
	}
	return ext, nil
}

// AggregateService answers read-only questions over the whole battery table.
type AggregateService struct {
	db *database.Service
}

// NewAggregateService returns an AggregateService backed by db.
func NewAggregateService(db *database.Service) *AggregateService {
	return &AggregateService{db: db}
}

// ExtremeGroupCapacities reads every battery and applies ExtremeGroups.
func (s *AggregateService) ExtremeGroupCapacities(ctx context.Context) (Extremes, error) {
	batteries, err := s.db.ListBatteries(ctx, s.db.DB())
	if err != nil {
		return Extremes{}, classify("list batteries", err)
	}
	return ExtremeGroups(batteries)
}

// BatteriesInGroup returns the batteries in groupID in insertion order.
// An unknown or empty group yields an empty slice.
func (s *AggregateService) BatteriesInGroup(ctx context.Context, groupID int64) ([]database.Battery, error) {
	batteries, err := s.db.ListBatteriesByGroupID(ctx, s.db.DB(), groupID)
	if err != nil {
		return nil, classify("list batteries by group", err)
	}
	return batteries, nil
}
