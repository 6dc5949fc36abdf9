// Package catalog loads the static game data the forge consumes: acts,
// gear slots, gear items, classes, tasks and loot card groups.
//
// A Catalog is immutable once built and is passed by reference to the
// components that need it.
package catalog

import (
	"embed"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/honor-run-forge/internal/entities"
	"github.com/KirkDiggler/honor-run-forge/internal/errors"
)

//go:embed data/*.yaml
var defaultData embed.FS

// File names read by LoadFS
const (
	ActsFile       = "acts.yaml"
	SlotsFile      = "slots.yaml"
	ItemsFile      = "items.yaml"
	ClassesFile    = "classes.yaml"
	TasksFile      = "tasks.yaml"
	CardGroupsFile = "card_groups.yaml"
)

// Data is the raw content of a catalog
type Data struct {
	Acts       []entities.Act
	Slots      []entities.GearSlot
	Items      []entities.GearItem
	Classes    []entities.ClassOption
	Tasks      []entities.Task
	CardGroups []entities.SlotCardGroup
}

// Catalog is a validated, indexed set of static game data
type Catalog struct {
	data     Data
	index    *Index
	slotByID map[string]entities.GearSlot
	taskByID map[string]entities.Task
	actByID  map[entities.ActID]entities.Act
}

// New validates data and builds a catalog around it
func New(data Data) (*Catalog, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	c := &Catalog{
		data:     data,
		index:    BuildGearIndex(data.Items),
		slotByID: make(map[string]entities.GearSlot, len(data.Slots)),
		taskByID: make(map[string]entities.Task, len(data.Tasks)),
		actByID:  make(map[entities.ActID]entities.Act, len(data.Acts)),
	}
	for _, slot := range data.Slots {
		c.slotByID[slot.ID] = slot
	}
	for _, task := range data.Tasks {
		c.taskByID[task.ID] = task
	}
	for _, act := range data.Acts {
		c.actByID[act.ID] = act
	}

	return c, nil
}

// Default loads the catalog embedded in the binary
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded catalog")
	}
	return LoadFS(sub)
}

// LoadFS reads every catalog file from the root of fsys
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var data Data

	files := []struct {
		name string
		dest any
	}{
		{ActsFile, &data.Acts},
		{SlotsFile, &data.Slots},
		{ItemsFile, &data.Items},
		{ClassesFile, &data.Classes},
		{TasksFile, &data.Tasks},
		{CardGroupsFile, &data.CardGroups},
	}

	for _, f := range files {
		b, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, "failed to read catalog file").
				WithMeta("file", f.name)
		}
		if err := yaml.Unmarshal(b, f.dest); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog file").
				WithMeta("file", f.name)
		}
	}

	return New(data)
}

// Validate checks referential integrity between catalog sections
func (d Data) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(d.Acts) == 0 {
		vb.RequiredField("acts")
	}
	if len(d.Slots) == 0 {
		vb.RequiredField("slots")
	}

	acts := make(map[entities.ActID]bool, len(d.Acts))
	for _, act := range d.Acts {
		if act.ID == "" {
			vb.RequiredField("acts.id")
			continue
		}
		acts[act.ID] = true
	}

	slots := make(map[string]bool, len(d.Slots))
	for _, slot := range d.Slots {
		if slot.ID == "" {
			vb.RequiredField("slots.id")
			continue
		}
		slots[slot.ID] = true
	}

	for _, item := range d.Items {
		if item.ID == "" {
			vb.RequiredField("items.id")
			continue
		}
		if !slots[item.SlotID] {
			vb.Fieldf("items."+item.ID, "unknown slot %q", item.SlotID)
		}
		for _, act := range item.Acts {
			if !acts[act] {
				vb.Fieldf("items."+item.ID, "unknown act %q", act)
			}
		}
	}

	for _, task := range d.Tasks {
		if task.ID == "" {
			vb.RequiredField("tasks.id")
			continue
		}
		if !acts[task.ActID] {
			vb.Fieldf("tasks."+task.ID, "unknown act %q", task.ActID)
		}
	}

	for _, group := range d.CardGroups {
		if group.ID == "" {
			vb.RequiredField("card_groups.id")
			continue
		}
		for _, slotID := range group.SlotIDs {
			if !slots[slotID] {
				vb.Fieldf("card_groups."+string(group.ID), "unknown slot %q", slotID)
			}
		}
	}

	for _, class := range d.Classes {
		if class.Name == "" {
			vb.RequiredField("classes.name")
		}
	}

	return vb.Build()
}

// Index returns the gear index built from the item list
func (c *Catalog) Index() *Index {
	return c.index
}

// Items returns every gear item in catalog order
func (c *Catalog) Items() []entities.GearItem {
	return c.data.Items
}

// Acts returns the campaign stages in play order
func (c *Catalog) Acts() []entities.Act {
	return c.data.Acts
}

// HasAct reports whether the act is part of the catalog
func (c *Catalog) HasAct(id entities.ActID) bool {
	_, ok := c.actByID[id]
	return ok
}

// Act looks up an act by id
func (c *Catalog) Act(id entities.ActID) (entities.Act, bool) {
	act, ok := c.actByID[id]
	return act, ok
}

// DefaultActID returns the first act, or an empty id for an empty catalog
func (c *Catalog) DefaultActID() entities.ActID {
	if len(c.data.Acts) == 0 {
		return ""
	}
	return c.data.Acts[0].ID
}

// Slots returns every gear slot in catalog order
func (c *Catalog) Slots() []entities.GearSlot {
	return c.data.Slots
}

// Slot looks up a slot by id
func (c *Catalog) Slot(id string) (entities.GearSlot, bool) {
	slot, ok := c.slotByID[id]
	return slot, ok
}

// SlotName returns the display name of a slot, or the id itself when the
// slot is not in the catalog
func (c *Catalog) SlotName(id string) string {
	if slot, ok := c.slotByID[id]; ok {
		return slot.Name
	}
	return id
}

// AvailableSlotsForAct returns the slots that can be rolled in an act.
// Every slot is currently available in every act.
func (c *Catalog) AvailableSlotsForAct(_ entities.ActID) []entities.GearSlot {
	return c.data.Slots
}

// DefaultSlotID returns the first available slot for an act
func (c *Catalog) DefaultSlotID(act entities.ActID) string {
	slots := c.AvailableSlotsForAct(act)
	if len(slots) == 0 {
		return ""
	}
	return slots[0].ID
}

// Classes returns the class pool used for drafting
func (c *Catalog) Classes() []entities.ClassOption {
	return c.data.Classes
}

// CardGroups returns the loot card groups in deal order
func (c *Catalog) CardGroups() []entities.SlotCardGroup {
	return c.data.CardGroups
}

// Tasks returns every task in catalog order
func (c *Catalog) Tasks() []entities.Task {
	return c.data.Tasks
}

// TasksForAct returns the tasks belonging to an act
func (c *Catalog) TasksForAct(act entities.ActID) []entities.Task {
	var out []entities.Task
	for _, task := range c.data.Tasks {
		if task.ActID == act {
			out = append(out, task)
		}
	}
	return out
}

// Task looks up a task by id
func (c *Catalog) Task(id string) (entities.Task, bool) {
	task, ok := c.taskByID[id]
	return task, ok
}
