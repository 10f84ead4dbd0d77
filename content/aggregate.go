package content

import (
	"context"
	"fmt"

	"github.com/cmgorg/libcmg-go/ownership"
)

// Stake is one account's aggregated position in a content item: percentage
// points held and the total bid value behind them. The creator's baseline
// points carry zero value.
type Stake struct {
	Points int
	Value  float64
}

// Aggregate resolves the current holder of every slot token and returns the
// per-account ownership mapping: the creator is credited 100 - SlotCount
// points with zero value, each slot credits its holder one point and the
// slot's bid value. An account holding several slots (or the creator also
// holding slots) accumulates into a single entry. Points always total 100.
func Aggregate(ctx context.Context, tokens ownership.Registry, rec *Record) (map[string]Stake, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	agg := make(map[string]Stake)
	credit := func(account string, points int, value float64) {
		s := agg[account]
		s.Points += points
		s.Value += value
		agg[account] = s
	}

	credit(rec.Creator, 100-SlotCount, 0)

	for i := range rec.Slots {
		holder, err := tokens.OwnerOf(ctx, rec.Slots[i].TokenID)
		if err != nil {
			return nil, fmt.Errorf("content: resolve slot %d holder: %w", i, err)
		}
		credit(holder, 1, rec.Slots[i].BidValue)
	}
	return agg, nil
}
