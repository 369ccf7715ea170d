package review

// Review is a customer review attached to a product.
type Review struct {
	ID        int     `json:"id"`
	ProductID int     `json:"productId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	Author    string  `json:"author"`
	CreatedAt string  `json:"createdAt"`
}
