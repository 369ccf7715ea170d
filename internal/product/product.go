package product

// Product represents a catalog item and maps to the `products` table.
// Price fields are immutable through this API; rating/reviewCount are
// aggregates refreshed by review submission.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	LocalizedName *string  `json:"localizedName,omitempty"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         *string  `json:"image,omitempty"`
	ImageSecond   *string  `json:"imageSecond,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Stock         int      `json:"stock"`
	CategoryID    *int     `json:"categoryId,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	Featured      bool     `json:"featured"`
	Active        bool     `json:"active"`
}

// Filter describes the independently optional listing filters. All set
// filters are AND-combined; Search is matched case-insensitively as a
// substring across name, localized name and description (OR-combined).
type Filter struct {
	CategoryID   *int
	IDs          []int
	Search       string
	FeaturedOnly bool
	ActiveOnly   bool
}

// PriceBracket is a fixed price-range filter bucket. Brackets are applied
// as a post-filter on the listing result, never pushed into the store.
type PriceBracket string

const (
	BracketUnder500  PriceBracket = "under500"
	Bracket500To1000 PriceBracket = "500to1000"
	BracketOver1000  PriceBracket = "over1000"
)

// ParseBracket maps a query-string value to a bracket. Unknown values
// report ok=false and the caller ignores the filter.
func ParseBracket(s string) (PriceBracket, bool) {
	switch PriceBracket(s) {
	case BracketUnder500, Bracket500To1000, BracketOver1000:
		return PriceBracket(s), true
	}
	return "", false
}

// Contains reports whether price falls inside the bracket.
func (b PriceBracket) Contains(price float64) bool {
	switch b {
	case BracketUnder500:
		return price < 500
	case Bracket500To1000:
		return price >= 500 && price <= 1000
	case BracketOver1000:
		return price > 1000
	}
	return false
}
