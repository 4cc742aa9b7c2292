package service

// ItemFilter narrows a catalog listing. Zero values mean "no filter".
type ItemFilter struct {
	Category string   // exact match
	MaxPrice *float64 // inclusive upper bound
}

// ItemInput is the payload of a new catalog item.
type ItemInput struct {
	Name     string
	Price    float64
	Category string
	ImageURL string
}
