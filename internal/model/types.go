// Package model defines the task and task list documents shared by every layer.
package model

import "time"

// Task represents a single task document.
type Task struct {
	ID        string    `yaml:"id"`
	ListID    string    `yaml:"listId"`
	UserID    string    `yaml:"userId"`
	Title     string    `yaml:"title"`
	Notes     string    `yaml:"notes,omitempty"`
	Complete  bool      `yaml:"complete"`
	Archived  bool      `yaml:"archived"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// TaskList represents a task list document with its denormalized counters.
type TaskList struct {
	ID                      string    `yaml:"id"`
	UserID                  string    `yaml:"userId"`
	Name                    string    `yaml:"name"`
	Primary                 bool      `yaml:"primary"`
	NumberOfCompleteTasks   int       `yaml:"numberOfCompleteTasks"`
	NumberOfIncompleteTasks int       `yaml:"numberOfIncompleteTasks"`
	CreatedAt               time.Time `yaml:"createdAt"`
}

// TotalTasks returns the sum of both counters.
func (l TaskList) TotalTasks() int {
	return l.NumberOfCompleteTasks + l.NumberOfIncompleteTasks
}

// ImportedList is a task list read from an external source, ready to be
// written into the store.
type ImportedList struct {
	Name    string
	Primary bool
	Tasks   []ImportedTask
}

// ImportedTask is a task read from an external source.
type ImportedTask struct {
	Title    string
	Notes    string
	Complete bool
}
