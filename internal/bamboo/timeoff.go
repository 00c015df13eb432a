package bamboo

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

const (
	timeOffRequestsPath = "/time_off/requests"
	whosOutPath         = "/time_off/whos_out"
)

// TimeOffStatus is the approval state of a request.
type TimeOffStatus struct {
	Status      string `json:"status"`
	LastChanged string `json:"lastChanged,omitempty"`
}

// TimeOffAmount is how much time a request takes, e.g. 1 days.
type TimeOffAmount struct {
	Unit   string      `json:"unit"`
	Amount json.Number `json:"amount"`
}

// TimeOffType is the leave category, e.g. Vacation.
type TimeOffType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeOffRequest is a time off request covering some part of a queried range.
type TimeOffRequest struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employeeId"`
	Name       string        `json:"name"`
	Start      string        `json:"start"`
	End        string        `json:"end"`
	Status     TimeOffStatus `json:"status"`
	Type       TimeOffType   `json:"type"`
	Amount     TimeOffAmount `json:"amount"`
}

// WhosOutEntry is a row of the who's out feed: either someone's time off or
// a company holiday.
type WhosOutEntry struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeOffRequests lists the employee's time off requests overlapping from..to.
func (c *Client) TimeOffRequests(ctx context.Context, from, to time.Time) ([]TimeOffRequest, error) {
	query := url.Values{}
	query.Set("employeeId", c.employeeID)
	query.Set("start", formatDate(from))
	query.Set("end", formatDate(to))

	var requests []TimeOffRequest
	if err := c.transport.getJSON(ctx, timeOffRequestsPath, query, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// WhosOut lists everyone out, and every holiday, between from and to.
func (c *Client) WhosOut(ctx context.Context, from, to time.Time) ([]WhosOutEntry, error) {
	query := url.Values{}
	query.Set("start", formatDate(from))
	query.Set("end", formatDate(to))

	var entries []WhosOutEntry
	if err := c.transport.getJSON(ctx, whosOutPath, query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
