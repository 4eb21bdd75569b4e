package replay

import (
	"sort"
	"strconv"

	"github.com/delta/tickreplay/internal/gamelog"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// sortedBots returns the snapshot's bots ordered by id.
func sortedBots(w *gamelog.World) []gamelog.Bot {
	bots := make([]gamelog.Bot, 0, len(w.Bots))
	for _, b := range w.Bots {
		bots = append(bots, b)
	}
	sort.Slice(bots, func(i, j int) bool { return bots[i].ID < bots[j].ID })
	return bots
}

// sortedBanks returns banks ordered by their map key.
func sortedBanks(w *gamelog.World) []gamelog.Bank {
	keys := sortedKeys(w.PermanentEntities.Banks)
	banks := make([]gamelog.Bank, 0, len(keys))
	for _, k := range keys {
		banks = append(banks, w.PermanentEntities.Banks[k])
	}
	return banks
}

// sortedPads returns energy pads ordered by their map key.
func sortedPads(w *gamelog.World) []gamelog.Pad {
	keys := sortedKeys(w.PermanentEntities.EnergyPads)
	pads := make([]gamelog.Pad, 0, len(keys))
	for _, k := range keys {
		pads = append(pads, w.PermanentEntities.EnergyPads[k])
	}
	return pads
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sortedCounts returns map keys ordered by descending count, then name.
func sortedCounts(counts map[gamelog.Kind]int) []gamelog.Kind {
	kinds := make([]gamelog.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
