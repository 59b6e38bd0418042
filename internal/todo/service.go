package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrValidation = errors.New("validation failed")

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

type Service struct {
	log        *zap.Logger
	repository Repository
}

// ItemResponse is the wire shape of a single to-do item.
type ItemResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	Status      string    `json:"status"`
	CreatedDate time.Time `json:"createdDate"`
}

func NewService(log *zap.Logger, repo Repository) *Service {
	return &Service{
		log:        log,
		repository: repo,
	}
}

func (s *Service) List(userID string) ([]ItemResponse, error) {
	items, err := s.repository.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) ListByStatus(userID string, completed bool) ([]ItemResponse, error) {
	items, err := s.repository.ListByCompletion(userID, completed)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) Get(id int, userID string) (*ItemResponse, error) {
	item, err := s.repository.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(userID, title, description string) (*ItemResponse, error) {
	if err := validateItemInput(title, description); err != nil {
		return nil, err
	}

	item := &ToDoItem{
		Title:       title,
		Description: description,
		IsCompleted: false,
		UserID:      userID,
	}
	if err := s.repository.Create(item); err != nil {
		return nil, err
	}

	s.log.Info("created todo item",
		zap.Int("id", item.ID),
		zap.String("user_id", userID))

	resp := toResponse(item)
	return &resp, nil
}

// Update replaces the three mutable fields wholesale; there is no partial
// patch.
func (s *Service) Update(id int, userID, title, description string, completed bool) (*ItemResponse, error) {
	if err := validateItemInput(title, description); err != nil {
		return nil, err
	}

	item, err := s.repository.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	item.Title = title
	item.Description = description
	item.IsCompleted = completed
	if err := s.repository.Update(item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(id int, userID string) error {
	if err := s.repository.Delete(id, userID); err != nil {
		return err
	}

	s.log.Info("deleted todo item",
		zap.Int("id", id),
		zap.String("user_id", userID))
	return nil
}

func (s *Service) Metrics(userID string) (*Metrics, error) {
	return s.repository.Metrics(userID)
}

func validateItemInput(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, maxTitleLength)
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrValidation, maxDescriptionLength)
	}
	return nil
}

func toResponse(item *ToDoItem) ItemResponse {
	status := "Pending"
	if item.IsCompleted {
		status = "Completed"
	}
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		IsCompleted: item.IsCompleted,
		Status:      status,
		CreatedDate: item.CreatedAt,
	}
}

func toResponses(items []ToDoItem) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toResponse(&items[i]))
	}
	return responses
}
