// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mythenpark/parkvote/models"
)

// Directory is the static event catalog the ledger consults for
// denormalized titles. Loaded once at startup; the website's CMS owns
// the real event content, this is only the id → title mapping plus
// what GET /api/events needs.
type Directory struct {
	byID  map[int]models.Event
	order []int
}

// Load reads the catalog from a JSON file (an array of events). An
// empty path returns the built-in park schedule.
func Load(path string) (*Directory, error) {
	if path == "" {
		return NewDirectory(defaultEvents), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	var list []models.Event
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse events file: %w", err)
	}
	return NewDirectory(list), nil
}

func NewDirectory(list []models.Event) *Directory {
	d := &Directory{byID: make(map[int]models.Event, len(list))}
	for _, ev := range list {
		if _, dup := d.byID[ev.ID]; !dup {
			d.order = append(d.order, ev.ID)
		}
		d.byID[ev.ID] = ev
	}
	sort.Ints(d.order)
	return d
}

// Title returns the event's title, if the event is known.
func (d *Directory) Title(eventID int) (string, bool) {
	ev, ok := d.byID[eventID]
	return ev.Title, ok
}

// List returns the catalog in id order.
func (d *Directory) List() []models.Event {
	list := make([]models.Event, 0, len(d.order))
	for _, id := range d.order {
		list = append(list, d.byID[id])
	}
	return list
}

var defaultEvents = []models.Event{
	{ID: 1, Title: "Winter Snowboard Championship", Date: "2025-12-15", Location: "Mythenpark Main Slope"},
	{ID: 2, Title: "Freestyle Workshop with Pro Riders", Date: "2026-01-20", Location: "Mythenpark Training Area"},
	{ID: 3, Title: "Night Ride Special", Date: "2026-02-05", Location: "Mythenpark Full Course"},
	{ID: 4, Title: "Kids Snow Day", Date: "2026-02-12", Location: "Mythenpark Kids Zone"},
}
