package views

// Tab is one panel of the case-study tab set.
type Tab struct {
	ID    string
	Label string
}

// Project page tabs, in display order.
var Tabs = []Tab{
	{ID: "overview", Label: "Overview"},
	{ID: "gallery", Label: "Gallery"},
	{ID: "details", Label: "Details"},
}

// DefaultTab is shown when no tab, or an unknown one, is requested.
const DefaultTab = "overview"

// SelectTab returns id when it names a tab, otherwise the default.
func SelectTab(id string) string {
	for _, t := range Tabs {
		if t.ID == id {
			return id
		}
	}
	return DefaultTab
}
