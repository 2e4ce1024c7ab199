package domain

import (
	"sort"
	"strings"
	"time"
)

// Task is a to-do item that focus sessions can be attributed to
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	TimeSpent int      `json:"timeSpent"` // minutes
}

// Priority represents task priority
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of the priority (lower sorts first)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Label returns the capitalized display name
func (p Priority) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Cycle returns the next priority in high -> medium -> low order
func (p Priority) Cycle() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// SortTasks orders tasks by priority, keeping insertion order within a priority
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
}

// NewTaskID returns a creation timestamp in milliseconds that no existing task uses
func NewTaskID(now time.Time, existing []Task) int64 {
	id := now.UnixMilli()
	for {
		taken := false
		for _, t := range existing {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}

// FindTask returns the index of the task with the given id, or -1
func FindTask(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
