package coordinator

import "tasklane/internal/readmodel"

// SelectIncompleteTasks adds every incomplete task of the viewed list to the
// selection, keeping whatever was already selected.
func (c *Coordinator) SelectIncompleteTasks() {
	c.sel.Select(incompleteIDs(c.state())...)
}

// DeselectIncompleteTasks removes every incomplete task of the viewed list
// from the selection. Selected complete tasks stay selected.
func (c *Coordinator) DeselectIncompleteTasks() {
	c.sel.Deselect(incompleteIDs(c.state())...)
}

func incompleteIDs(s readmodel.State) []string {
	tasks := readmodel.IncompletedTasks(s)
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
