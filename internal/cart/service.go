package cart

// Service orchestrates cart operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add puts qty units of a product into the owner's cart. An existing row
// for the same product is incremented rather than duplicated; qty defaults
// to 1 when unspecified.
func (s *Service) Add(o Owner, productID, qty int) (Item, error) {
	if o.UserID <= 0 && o.SessionID == "" {
		return Item{}, ErrNoOwner
	}
	if productID <= 0 {
		return Item{}, ErrInvalidProduct
	}
	if qty < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if qty == 0 {
		qty = 1
	}
	return s.repo.Add(o, productID, qty)
}

// UpdateQuantity replaces a row's quantity. A quantity of zero or less is a
// removal request; the returned item is nil in that case.
func (s *Service) UpdateQuantity(itemID, qty int) (*Item, error) {
	if itemID <= 0 {
		return nil, ErrItemNotFound
	}
	if qty <= 0 {
		if err := s.repo.Remove(itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	item, err := s.repo.UpdateQuantity(itemID, qty)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Remove(itemID int) error {
	if itemID <= 0 {
		return ErrItemNotFound
	}
	return s.repo.Remove(itemID)
}

func (s *Service) Clear(o Owner) error {
	if o.UserID <= 0 && o.SessionID == "" {
		return ErrNoOwner
	}
	return s.repo.Clear(o)
}

func (s *Service) List(o Owner) ([]Line, error) {
	if o.UserID <= 0 && o.SessionID == "" {
		return nil, ErrNoOwner
	}
	return s.repo.List(o)
}
