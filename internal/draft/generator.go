// Package draft rolls random multiclass character builds for a run.
package draft

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
	"github.com/KirkDiggler/honor-run-forge/internal/pkg/random"
)

// MaxOptionSuffix bounds the random suffix of generated option ids
const MaxOptionSuffix = 100000

// Fallbacks used when the catalog cannot supply a value
var (
	FallbackGender = entities.NamedOption{Name: "Undefined Presence"}

	FallbackSubclass = entities.NamedOption{Name: "Generalist"}

	FallbackClass = entities.ClassOption{
		Name:        "Adventurer",
		Description: "Improvises techniques from every discipline.",
		Subclasses:  []entities.NamedOption{FallbackSubclass},
	}
)

// classCountWeights gives 1, 2 or 3 classes with probability 0.20/0.35/0.45
var classCountWeights = []random.Weighted[int]{
	{Item: 1, Weight: 20},
	{Item: 2, Weight: 35},
	{Item: 3, Weight: 45},
}

// Config configures a Generator
type Config struct {
	Classes          []entities.ClassOption
	Roller           dice.Roller
	TotalLevels      int
	OptionsPerPlayer int
}

// Validate ensures the config is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Roller == nil {
		vb.RequiredField("roller")
	}
	if c.TotalLevels < 1 {
		vb.Field("total_levels", "must be positive")
	}
	if c.OptionsPerPlayer < 1 {
		vb.Field("options_per_player", "must be positive")
	}
	return vb.Build()
}

// Generator drafts character options
type Generator struct {
	classes          []entities.ClassOption
	roller           dice.Roller
	totalLevels      int
	optionsPerPlayer int
}

// NewGenerator creates a generator. An empty class list drafts the
// fallback Adventurer class.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	classes := cfg.Classes
	if len(classes) == 0 {
		classes = []entities.ClassOption{FallbackClass}
	}

	return &Generator{
		classes:          classes,
		roller:           cfg.Roller,
		totalLevels:      cfg.TotalLevels,
		optionsPerPlayer: cfg.OptionsPerPlayer,
	}, nil
}

// RollClassCount rolls how many classes a build mixes
func (g *Generator) RollClassCount() (int, error) {
	return random.PickWeighted(g.roller, classCountWeights)
}

// BuildClassSpread drafts distinct classes and splits the level budget
// across them. Entries keep class selection order.
func (g *Generator) BuildClassSpread() ([]entities.ClassSpread, error) {
	desired, err := g.RollClassCount()
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll class count")
	}
	count := min(max(desired, 1), len(g.classes))

	classes, err := random.PickMany(g.roller, g.classes, count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick classes")
	}

	levels, err := random.Composition(g.roller, g.totalLevels, count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to split levels")
	}

	spread := make([]entities.ClassSpread, 0, count)
	for i, class := range classes {
		subclass := FallbackSubclass
		if len(class.Subclasses) > 0 {
			subclass, err = random.PickOne(g.roller, class.Subclasses)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to pick subclass for %s", class.Name)
			}
		}
		spread = append(spread, entities.ClassSpread{
			Class:    class,
			Subclass: subclass,
			Levels:   levels[i],
		})
	}

	return spread, nil
}

// BuildOption drafts one option for a zero-based player/option position
func (g *Generator) BuildOption(playerIndex, optionIndex int) (entities.CharacterOption, error) {
	suffix, err := random.Int(g.roller, 0, MaxOptionSuffix)
	if err != nil {
		return entities.CharacterOption{}, errors.Wrap(err, "failed to roll option id")
	}

	spread, err := g.BuildClassSpread()
	if err != nil {
		return entities.CharacterOption{}, err
	}

	return entities.CharacterOption{
		ID:          fmt.Sprintf("P%d-O%d-%d", playerIndex+1, optionIndex+1, suffix),
		Gender:      FallbackGender,
		ClassSpread: spread,
	}, nil
}

// GenerateRun drafts a full option set for each of playerCount players
func (g *Generator) GenerateRun(playerCount int) (entities.RunResult, error) {
	if playerCount < 0 {
		return entities.RunResult{}, errors.InvalidArgumentf("player count must not be negative, got %d", playerCount)
	}

	run := entities.RunResult{Players: make([]entities.PlayerOptionSet, 0, playerCount)}
	for p := 0; p < playerCount; p++ {
		set := entities.PlayerOptionSet{
			PlayerNumber: p + 1,
			Options:      make([]entities.CharacterOption, 0, g.optionsPerPlayer),
		}
		for o := 0; o < g.optionsPerPlayer; o++ {
			option, err := g.BuildOption(p, o)
			if err != nil {
				return entities.RunResult{}, errors.Wrapf(err, "failed to build option %d for player %d", o+1, p+1)
			}
			set.Options = append(set.Options, option)
		}
		run.Players = append(run.Players, set)
	}

	slog.Info("Generated run",
		"players", playerCount,
		"options_per_player", g.optionsPerPlayer)

	return run, nil
}
