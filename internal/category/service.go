package category

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListActive returns the active categories.
func (s *Service) ListActive() ([]Category, error) {
	return s.repo.ListActive()
}
