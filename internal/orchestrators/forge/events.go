package forge

import (
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Event types published on the bus
const (
	// EventSessionHydrated fires once Load has replaced the default session
	EventSessionHydrated = "forge.session.hydrated"
	// EventSessionChanged fires after every committed state transition
	EventSessionChanged = "forge.session.changed"
	// EventLootDealt fires when a completed task opens an overlay
	EventLootDealt = "forge.loot.dealt"
)

// Entity types used as event sources
const (
	EntityTypePlayer  = "player"
	EntityTypeSession = "session"
)

// playerEntity identifies a seat at the table
type playerEntity struct {
	number int
}

func (p *playerEntity) GetID() string {
	return strconv.Itoa(p.number)
}

func (p *playerEntity) GetType() string {
	return EntityTypePlayer
}

// sessionEntity identifies the saved session as a whole
type sessionEntity struct {
	key string
}

func (s *sessionEntity) GetID() string {
	return s.key
}

func (s *sessionEntity) GetType() string {
	return EntityTypeSession
}

var (
	_ core.Entity = (*playerEntity)(nil)
	_ core.Entity = (*sessionEntity)(nil)
)
