package domain

// Trip is the overall plan: a title, a free-text date label, and the ordered
// activity sequence. The order is the user's intended chronological/visual
// order, assigned by drag-reorder — it is never derived from start times.
//
// The JSON tags define the single persisted document shape:
//
//	{"title": "...", "date": "...", "items": [...]}
//
// used identically by the local cache, the remote endpoint, and export files.
type Trip struct {
	Title      string     `json:"title"`
	Date       string     `json:"date"`
	Activities []Activity `json:"items"`
}

// DefaultTrip returns the built-in trip adopted when neither the remote
// endpoint nor the local cache has any data.
func DefaultTrip() Trip {
	return Trip{
		Title: "青森・埼玉 鉄道と歴史の旅",
		Date:  "2026年1月",
	}
}

// Clone returns a deep copy of the trip.
func (t Trip) Clone() Trip {
	c := t
	if t.Activities != nil {
		c.Activities = make([]Activity, len(t.Activities))
		for i, a := range t.Activities {
			c.Activities[i] = a.Clone()
		}
	}
	return c
}

// IndexOf returns the position of the activity with the given ID, or -1.
func (t Trip) IndexOf(id string) int {
	for i, a := range t.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// TotalPrice sums the price of every activity.
func (t Trip) TotalPrice() float64 {
	var sum float64
	for _, a := range t.Activities {
		sum += a.Price
	}
	return sum
}

// Document is a partially-present trip as read from the remote endpoint or an
// import file. Pointer fields distinguish "field absent" from "field empty",
// so adopting a document leaves missing fields unchanged.
type Document struct {
	Title *string     `json:"title,omitempty"`
	Date  *string     `json:"date,omitempty"`
	Items *[]Activity `json:"items,omitempty"`
}

// Empty reports whether the document carries no data at all — the shape the
// remote endpoint returns as "{}" when its backing file has never been written.
func (d Document) Empty() bool {
	return d.Title == nil && d.Date == nil && d.Items == nil
}

// ToTrip converts a document into a Trip, starting from base and overlaying
// only the fields present in the document.
func (d Document) ToTrip(base Trip) Trip {
	t := base.Clone()
	if d.Title != nil {
		t.Title = *d.Title
	}
	if d.Date != nil {
		t.Date = *d.Date
	}
	if d.Items != nil {
		t.Activities = make([]Activity, len(*d.Items))
		for i, a := range *d.Items {
			t.Activities[i] = a.Clone()
		}
	}
	return t
}

// DocumentFrom wraps a full trip as a Document with every field present.
func DocumentFrom(t Trip) Document {
	items := make([]Activity, len(t.Activities))
	for i, a := range t.Activities {
		items[i] = a.Clone()
	}
	return Document{Title: &t.Title, Date: &t.Date, Items: &items}
}
