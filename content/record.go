package content

import "sort"

// SlotCount is the number of auctioned ownership slots per content item.
// Each slot is worth one percentage point; the creator retains the remaining
// 100 - SlotCount points via the primary token.
const SlotCount = 10

// Slot is one auctioned ownership position: the price its current holder
// paid per point, and the token capability identifying the holder. The pair
// always moves as a unit when the sequence is reordered.
type Slot struct {
	BidValue float64
	TokenID  string
}

// Record is the per-identity auction state. Slots are kept sorted ascending
// by BidValue after every mutation.
type Record struct {
	Creator   string
	ContentID string
	Timestamp uint64

	Slots          [SlotCount]Slot
	PrimaryTokenID string
}

// Identity returns the identity the record was created for.
func (r *Record) Identity() Identity {
	return Identity{Creator: r.Creator, ContentID: r.ContentID, Timestamp: r.Timestamp}
}

// SortSlots restores the ascending-by-value slot order. The sort is stable:
// slots with equal values keep their relative order, and each (value, token)
// pair is permuted as a unit.
func (r *Record) SortSlots() {
	sort.SliceStable(r.Slots[:], func(i, j int) bool {
		return r.Slots[i].BidValue < r.Slots[j].BidValue
	})
}

// Sorted reports whether the slot sequence is ascending by value.
func (r *Record) Sorted() bool {
	for i := 0; i < SlotCount-1; i++ {
		if r.Slots[i].BidValue > r.Slots[i+1].BidValue {
			return false
		}
	}
	return true
}

// ReservePrice returns the sum of all slot values, the minimum acceptable
// licence price for content that has received bids.
func (r *Record) ReservePrice() float64 {
	var sum float64
	for i := range r.Slots {
		sum += r.Slots[i].BidValue
	}
	return sum
}
