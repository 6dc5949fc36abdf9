package entities

// Task is an encounter objective whose completion triggers a loot roll
type Task struct {
	ID          string `json:"id" yaml:"id"`
	ActID       ActID  `json:"actId" yaml:"act"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Reward      string `json:"reward,omitempty" yaml:"reward"`
}
