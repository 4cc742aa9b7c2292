package models

// Item is a catalog entry.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// ItemPatch carries the fields of a partial update; nil means "leave as is".
type ItemPatch struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.ImageURL == nil
}
