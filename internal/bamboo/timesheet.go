package bamboo

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

const (
	timesheetEntriesPath = "/time_tracking/timesheet_entries"
	storeClockEntryPath  = "/time_tracking/clock_entries/store"
	deleteClockEntryPath = "/time_tracking/clock_entries/delete"
)

// TimesheetEntry is an entry already recorded on the employee's timesheet.
type TimesheetEntry struct {
	ID         int      `json:"id"`
	EmployeeID int      `json:"employeeId"`
	Type       string   `json:"type"`
	Date       string   `json:"date"` // yyyy-MM-dd
	Start      string   `json:"start,omitempty"`
	End        string   `json:"end,omitempty"`
	Hours      *float64 `json:"hours,omitempty"`
	Note       string   `json:"note,omitempty"`
}

// ClockEntry is one start/end pair to be stored.
type ClockEntry struct {
	EmployeeID json.Number `json:"employeeId"`
	Date       string      `json:"date"`  // yyyy-MM-dd
	Start      string      `json:"start"` // HH:MM
	End        string      `json:"end"`   // HH:MM
}

type storeClockEntriesRequest struct {
	Entries []ClockEntry `json:"entries"`
}

type deleteClockEntriesRequest struct {
	ClockEntryIDs []int `json:"clockEntryIds"`
}

// TimesheetEntries lists the employee's timesheet entries between from and to inclusive.
func (c *Client) TimesheetEntries(ctx context.Context, from, to time.Time) ([]TimesheetEntry, error) {
	query := url.Values{}
	query.Set("employeeIds", c.employeeID)
	query.Set("start", formatDate(from))
	query.Set("end", formatDate(to))

	var entries []TimesheetEntry
	if err := c.transport.getJSON(ctx, timesheetEntriesPath, query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StoreClockEntries submits clock entries. The reply is returned whatever
// its status so the caller decides what counts as success.
func (c *Client) StoreClockEntries(ctx context.Context, entries []ClockEntry) (*Response, error) {
	return c.transport.Post(ctx, storeClockEntryPath, storeClockEntriesRequest{Entries: entries})
}

// DeleteClockEntries removes clock entries by id in one call.
func (c *Client) DeleteClockEntries(ctx context.Context, ids []int) (*Response, error) {
	return c.transport.Post(ctx, deleteClockEntryPath, deleteClockEntriesRequest{ClockEntryIDs: ids})
}
