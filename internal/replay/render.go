package replay

import (
	"fmt"
	"strings"

	"github.com/delta/tickreplay/internal/gamelog"
)

const legend = "Legend: . empty | * algae | x poison | W wall | B bank | E energy | 0/1 bot"

// printState writes the snapshot header, fixtures, bots and the map.
func (r *Replayer) printState(w *gamelog.World) {
	s := r.styles

	fmt.Fprintln(r.output, s.divider)
	fmt.Fprintf(r.output, "%s %s\n", s.title.Render("TICK"), s.value.Render(fmt.Sprintf("%d", w.Tick)))
	fmt.Fprintln(r.output, s.divider)

	fmt.Fprintf(r.output, "%s A=%s, B=%s | %s A=%s, B=%s | %s %s\n",
		s.label.Render("Scraps:"), s.player(0).Render(itoa(w.Scraps[0])), s.player(1).Render(itoa(w.Scraps[1])),
		s.label.Render("Algae:"), s.player(0).Render(itoa(w.AlgaeCount[0])), s.player(1).Render(itoa(w.AlgaeCount[1])),
		s.label.Render("Bots:"), s.value.Render(fmt.Sprintf("%d/%d", w.BotCount, w.MaxBots)))
	fmt.Fprintln(r.output)

	for _, bank := range sortedBanks(w) {
		fmt.Fprintf(r.output, "%s %d at %d %d -> DepositOccuring=%t | DepositTicksLeft=%d | DepositOwner=%d | Deposit Amount=%d\n",
			s.bank.Render("Bank ID"), bank.ID, bank.Location.X, bank.Location.Y,
			bank.DepositOccuring, bank.DepositTicksLeft, bank.DepositOwner, bank.DepositAmount)
	}
	for _, pad := range sortedPads(w) {
		fmt.Fprintf(r.output, "%s %d at %d %d -> Available=%t | TicksLeft=%d\n",
			s.pad.Render("EnergyPad ID"), pad.ID, pad.Location.X, pad.Location.Y,
			pad.Available, pad.TicksLeft)
	}
	fmt.Fprintln(r.output)

	fmt.Fprintln(r.output, s.title.Render("Bots:"))
	bots := sortedBots(w)
	if len(bots) == 0 {
		fmt.Fprintln(r.output, s.dim.Render("  (No bots on map)"))
	}
	for _, bot := range bots {
		fmt.Fprintf(r.output, "  Bot %d %s @ (%d,%d) | Energy: %.1f | Scraps: %d | Held: %d | Abilities: %s\n",
			bot.ID, s.player(bot.OwnerID).Render(fmt.Sprintf("[P%d]", bot.OwnerID)),
			bot.Location.X, bot.Location.Y, bot.Energy, bot.Scraps, bot.AlgaeHeld,
			strings.Join(bot.Abilities, ","))
	}
	fmt.Fprintln(r.output)

	fmt.Fprintln(r.output, s.title.Render("Map:"))
	for _, row := range r.buildGrid(w) {
		fmt.Fprintln(r.output, strings.Join(row, ""))
	}
	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, s.dim.Render(legend))
}

// buildGrid lays out the map. Later layers overwrite earlier ones:
// walls, algae, bots, banks, pads. Coordinates outside the extent are
// skipped.
func (r *Replayer) buildGrid(w *gamelog.World) [][]string {
	s := r.styles
	if w.Width <= 0 || w.Height <= 0 {
		return nil
	}

	grid := make([][]string, w.Height)
	for y := range grid {
		grid[y] = make([]string, w.Width)
		for x := range grid[y] {
			grid[y][x] = ". "
		}
	}
	put := func(p gamelog.Point, glyph string) {
		if w.InBounds(p) {
			grid[p.Y][p.X] = glyph
		}
	}

	for _, wall := range w.PermanentEntities.Walls {
		put(wall, s.wall.Render("W "))
	}
	for _, a := range w.Algae {
		if a.Poisoned() {
			put(a.Location, s.poison.Render("x "))
		} else {
			put(a.Location, s.algae.Render("* "))
		}
	}
	for _, bot := range sortedBots(w) {
		put(bot.Location, s.player(bot.OwnerID).Render(fmt.Sprintf("%d ", bot.OwnerID)))
	}
	for _, bank := range sortedBanks(w) {
		put(bank.Location, s.bank.Render("B "))
	}
	for _, pad := range sortedPads(w) {
		put(pad.Location, s.pad.Render("E "))
	}
	return grid
}
