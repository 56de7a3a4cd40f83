package orderlist

import (
	"encoding/json"

	"orderdesk/internal/models"
)

// OrderRow is an order as listed on the page.
type OrderRow struct {
	models.Order
	ProductCount int `json:"productCount"`
}

// MarshalJSON writes the order's fields followed by productCount. Without it the
// embedded order's MarshalJSON would drop the count.
func (r OrderRow) MarshalJSON() ([]byte, error) {
	order, err := json.Marshal(r.Order)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(order, &fields); err != nil {
		return nil, err
	}
	count, err := json.Marshal(r.ProductCount)
	if err != nil {
		return nil, err
	}
	fields["productCount"] = count
	return json.Marshal(fields)
}

// Snapshot is the JSON shape of the list page.
type Snapshot struct {
	Orders     []OrderRow `json:"orders"`
	Total      int        `json:"totalOrders"`
	SearchTerm string     `json:"searchTerm"`
	Loading    bool       `json:"loading"`
	Error      string     `json:"error,omitempty"`
}

// Snapshot renders the filtered list with per-order item counts.
func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rows := make([]OrderRow, len(v.filtered))
	for i, o := range v.filtered {
		rows[i] = OrderRow{Order: o, ProductCount: ProductCount(o)}
	}
	return Snapshot{
		Orders:     rows,
		Total:      len(v.orders),
		SearchTerm: v.searchTerm,
		Loading:    v.loading,
		Error:      v.err,
	}
}
