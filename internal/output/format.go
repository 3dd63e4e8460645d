// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tasklane/internal/model"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// PrimaryMarker follows the name of the primary list.
	PrimaryMarker = "[primary]"
)

var (
	doneStyle    = color.New(color.Faint)
	primaryStyle = color.New(color.FgHiYellow)
	headerStyle  = color.New(color.Bold)
)

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TITLE}\n", with [x] for complete tasks.
func FormatTask(w io.Writer, num int, task model.Task) {
	title := normalizeTitle(task.Title)
	if task.Complete {
		fmt.Fprintf(w, "%4d  %s\n", num, doneStyle.Sprintf("[x] %s", title))
		return
	}
	fmt.Fprintf(w, "%4d  [ ] %s\n", num, title)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, list model.TaskList) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, listTitle(list))
	fmt.Fprintln(w, ListSeparator)
}

// FormatLists writes a table of lists with their counters.
func FormatLists(w io.Writer, lists []model.TaskList) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(headerStyle.Sprint("NAME"), headerStyle.Sprint("DONE"), headerStyle.Sprint("OPEN"))
	for _, l := range lists {
		tbl.AddRow(listTitle(l), l.NumberOfCompleteTasks, l.NumberOfIncompleteTasks)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	fmt.Fprintln(w, tbl)
}

func listTitle(list model.TaskList) string {
	title := normalizeListTitle(list.Name)
	if list.Primary {
		title += " " + primaryStyle.Sprint(PrimaryMarker)
	}
	return title
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
