package gamelog

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// World is the game view logged at the start of every tick.
type World struct {
	Tick              int               `json:"tick"`
	Scraps            [2]int            `json:"scraps"`
	AlgaeCount        [2]int            `json:"algae_count"`
	BotCount          int               `json:"bot_count"`
	MaxBots           int               `json:"max_bots"`
	Width             int               `json:"width"`
	Height            int               `json:"height"`
	Bots              map[int]Bot       `json:"bots"`
	PermanentEntities PermanentEntities `json:"permanent_entities"`
	Algae             []Algae           `json:"algae"`
}

// Bot is a mobile agent owned by one of the two players.
type Bot struct {
	ID            int      `json:"id"`
	OwnerID       int      `json:"owner_id"`
	Location      Point    `json:"location"`
	Energy        float64  `json:"energy"`
	Scraps        int      `json:"scraps"`
	Abilities     []string `json:"abilities"`
	VisionRadius  int      `json:"vision_radius"`
	AlgaeHeld     int      `json:"algae_held"`
	TraversalCost float64  `json:"traversal_cost"`
	Status        string   `json:"status"`
}

// Bank is a deposit station.
type Bank struct {
	ID                int   `json:"id"`
	Location          Point `json:"location"`
	DepositOccuring   bool  `json:"deposit_occuring"`
	DepositAmount     int   `json:"deposit_amount"`
	DepositOwner      int   `json:"deposit_owner"`
	BankOwner         int   `json:"bank_owner"`
	DepositTicksLeft  int   `json:"deposit_ticks_left"`
	LockPickOccuring  bool  `json:"lockpick_occuring"`
	LockPickTicksLeft int   `json:"lockpick_ticks_left"`
	LockPickBotID     int   `json:"lockpick_botid"`
}

// Pad is an energy resupply station.
type Pad struct {
	ID        int   `json:"id"`
	Location  Point `json:"location"`
	Available bool  `json:"available"`
	TicksLeft int   `json:"ticks_left"`
}

// PermanentEntities are the fixtures that never move during a match.
type PermanentEntities struct {
	Banks      map[int]Bank `json:"banks"`
	EnergyPads map[int]Pad  `json:"energy_pads"`
	Walls      []Point      `json:"walls"`
}

// Algae is a collectible; poisoned algae is a hazard.
type Algae struct {
	Location Point  `json:"location"`
	IsPoison string `json:"is_poison"` // TRUE, FALSE or UNKNOWN
}

// Poisoned reports whether the algae is known to be poison.
func (a Algae) Poisoned() bool {
	return a.IsPoison == "TRUE"
}

// InBounds reports whether p lies inside the grid extent.
func (w *World) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w.Width && p.Y < w.Height
}
