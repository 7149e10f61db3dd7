package fleet

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intermernet/battery-registry/internal/database"
)

func battery(group int64, capacity int64) database.Battery {
	b := database.Battery{Capacity: capacity}
	if group != 0 {
		b.GroupID = sql.NullInt64{Int64: group, Valid: true}
	}
	return b
}

func TestExtremeGroups(t *testing.T) {
	tests := []struct {
		name      string
		batteries []database.Battery
		want      Extremes
	}{
		{
			name:      "sums per group",
			batteries: []database.Battery{battery(1, 10), battery(1, 5), battery(2, 3)},
			want:      Extremes{Min: 2, Max: 1},
		},
		{
			name:      "single group is both extremes",
			batteries: []database.Battery{battery(7, 1), battery(7, 2)},
			want:      Extremes{Min: 7, Max: 7},
		},
		{
			name:      "ties go to the first group seen",
			batteries: []database.Battery{battery(3, 5), battery(4, 5), battery(5, 5)},
			want:      Extremes{Min: 3, Max: 3},
		},
		{
			name:      "ungrouped batteries are ignored",
			batteries: []database.Battery{battery(0, 1000), battery(1, 4), battery(0, -50), battery(2, 8)},
			want:      Extremes{Min: 1, Max: 2},
		},
		{
			name:      "zero capacity group is a valid minimum",
			batteries: []database.Battery{battery(9, 0), battery(8, 1)},
			want:      Extremes{Min: 9, Max: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtremeGroups(tt.batteries)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtremeGroupsEmpty(t *testing.T) {
	_, err := ExtremeGroups(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ExtremeGroups([]database.Battery{battery(0, 10)})
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
