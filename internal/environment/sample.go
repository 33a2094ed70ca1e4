package environment

// Item is one row of the per-tier sample data set.
type Item struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Status string `json:"status"`
}

var (
	devItems = []Item{
		{ID: 1, Name: "DEV Item 1", Value: 100, Status: "testing"},
		{ID: 2, Name: "DEV Item 2", Value: 200, Status: "testing"},
		{ID: 3, Name: "DEV Item 3", Value: 300, Status: "testing"},
	}
	qaItems = []Item{
		{ID: 1, Name: "QA Item 1", Value: 150, Status: "validation"},
		{ID: 2, Name: "QA Item 2", Value: 250, Status: "validation"},
		{ID: 3, Name: "QA Item 3", Value: 350, Status: "validation"},
	}
	prodItems = []Item{
		{ID: 1, Name: "PROD Item 1", Value: 1000, Status: "active"},
		{ID: 2, Name: "PROD Item 2", Value: 2000, Status: "active"},
		{ID: 3, Name: "PROD Item 3", Value: 3000, Status: "active"},
	}
)

// SampleItems returns a copy of the data set for t.  Unknown tiers get the
// production rows.
func SampleItems(t Tier) []Item {
	var src []Item
	switch t {
	case Dev:
		src = devItems
	case QA:
		src = qaItems
	default:
		src = prodItems
	}
	return append([]Item(nil), src...)
}
