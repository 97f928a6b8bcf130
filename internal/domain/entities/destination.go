package entities

// Destination represents a catalog entry. The catalog is owned by a separate
// service; this backend only reads it.
type Destination struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Country        string  `json:"country" db:"country"`
	Continent      string  `json:"continent" db:"continent"`
	Type           string  `json:"category" db:"type"`
	BestSeason     string  `json:"season" db:"best_season"`
	AvgRating      float64 `json:"rating" db:"avg_rating"`
	AnnualVisitors int     `json:"annual_visitors" db:"annual_visitors"`
	UnescoSite     bool    `json:"unesco_site" db:"unesco_site"`
	PhotoURL       string  `json:"image" db:"photo_url"`
	AvgCostUSD     float64 `json:"price" db:"avg_cost_usd"`
	Description    string  `json:"description" db:"description"`
}
