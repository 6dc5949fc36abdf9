package catalog

import "github.com/KirkDiggler/honor-run-forge/internal/entities"

// Index is a two-way lookup over gear items
type Index struct {
	// ByID maps item id to item. Last write wins on duplicate ids.
	ByID map[string]entities.GearItem
	// ByAct maps act -> slot id -> items in catalog order
	ByAct map[entities.ActID]map[string][]entities.GearItem
}

// BuildGearIndex groups items by id and by act/slot
func BuildGearIndex(items []entities.GearItem) *Index {
	idx := &Index{
		ByID:  make(map[string]entities.GearItem, len(items)),
		ByAct: make(map[entities.ActID]map[string][]entities.GearItem),
	}

	for _, item := range items {
		idx.ByID[item.ID] = item
		for _, act := range item.Acts {
			slots, ok := idx.ByAct[act]
			if !ok {
				slots = make(map[string][]entities.GearItem)
				idx.ByAct[act] = slots
			}
			slots[item.SlotID] = append(slots[item.SlotID], item)
		}
	}

	return idx
}

// Item looks up an item by id
func (i *Index) Item(id string) (entities.GearItem, bool) {
	item, ok := i.ByID[id]
	return item, ok
}

// Pool returns the items eligible for a slot in an act. The returned slice
// is shared with the index and must not be modified.
func (i *Index) Pool(act entities.ActID, slotID string) []entities.GearItem {
	slots, ok := i.ByAct[act]
	if !ok {
		return nil
	}
	return slots[slotID]
}
