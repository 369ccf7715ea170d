package product

// Service provides catalog queries. The price bracket is applied here as a
// post-filter on the repository result set.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(f Filter, bracket PriceBracket) ([]Product, error) {
	products, err := s.repo.List(f)
	if err != nil {
		return nil, err
	}
	if bracket == "" {
		return products, nil
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if bracket.Contains(p.Price) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}
