package order

import "math"

// DeliveryAddress is embedded in the order row (stored as jsonb).
type DeliveryAddress struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Pincode  string  `json:"pincode"`
	Landmark *string `json:"landmark,omitempty"`
}

// MissingFields returns the names of the required address fields that are
// empty. City and landmark are optional.
func (a DeliveryAddress) MissingFields() []string {
	missing := make([]string, 0, 4)
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if a.Address == "" {
		missing = append(missing, "address")
	}
	if a.Pincode == "" {
		missing = append(missing, "pincode")
	}
	return missing
}

// Order is a finalized purchase. It is created atomically with its items
// and immutable thereafter.
type Order struct {
	ID                    int             `json:"id"`
	OrderNumber           string          `json:"orderNumber"`
	CustomerKey           string          `json:"customerId"`
	Subtotal              float64         `json:"subtotal"`
	DeliveryCharge        float64         `json:"deliveryCharge"`
	Total                 float64         `json:"total"`
	PaymentMethod         string          `json:"paymentMethod"`
	PaymentStatus         string          `json:"paymentStatus"`
	Status                string          `json:"status"`
	DeliveryAddress       DeliveryAddress `json:"deliveryAddress"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             string          `json:"createdAt"`
	Items                 []Item          `json:"items,omitempty"`
}

// Item is a line item snapshot. UnitPrice is captured at purchase time and
// decoupled from the live product price.
type Item struct {
	ID         int     `json:"id"`
	OrderID    int     `json:"orderId"`
	ProductID  int     `json:"productId"`
	SellerID   int     `json:"sellerId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Pricing holds the delivery pricing rule shared by order validation and
// the checkout workflow.
type Pricing struct {
	DeliveryCharge  float64
	FreeDeliveryMin float64
}

// Quote computes the delivery charge and grand total for a subtotal:
// delivery is free at or above the threshold, a flat fee below it.
func (p Pricing) Quote(subtotal float64) (charge, total float64) {
	if subtotal >= p.FreeDeliveryMin {
		return 0, subtotal
	}
	return p.DeliveryCharge, round2(subtotal + p.DeliveryCharge)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
