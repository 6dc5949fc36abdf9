package entities

// NamedOption is a named catalog choice such as a subclass
type NamedOption struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
}

// ClassOption is a class with its selectable subclasses
type ClassOption struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags"`
	Subclasses  []NamedOption `json:"subclasses" yaml:"subclasses"`
}

// ClassSpread allocates levels to one class and subclass of a draft
type ClassSpread struct {
	Class    ClassOption `json:"klass"`
	Subclass NamedOption `json:"subclass"`
	Levels   int         `json:"levels"`
}

// CharacterOption is one drafted multiclass build offered to a player
type CharacterOption struct {
	ID          string        `json:"id"`
	Gender      NamedOption   `json:"gender"`
	ClassSpread []ClassSpread `json:"classSpread"`
}

// TotalLevels sums the levels of every spread entry
func (o CharacterOption) TotalLevels() int {
	total := 0
	for _, entry := range o.ClassSpread {
		total += entry.Levels
	}
	return total
}

// PlayerOptionSet holds the drafted options for one player
type PlayerOptionSet struct {
	PlayerNumber int               `json:"playerNumber"`
	Options      []CharacterOption `json:"options"`
}

// Option finds a drafted option by id
func (p PlayerOptionSet) Option(id string) (CharacterOption, bool) {
	for _, opt := range p.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return CharacterOption{}, false
}

// RunResult is the full draft for a session
type RunResult struct {
	Players []PlayerOptionSet `json:"players"`
}

// Player finds the option set for a player number
func (r RunResult) Player(playerNumber int) (PlayerOptionSet, bool) {
	for _, p := range r.Players {
		if p.PlayerNumber == playerNumber {
			return p, true
		}
	}
	return PlayerOptionSet{}, false
}
