package todo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("todo item not found")

// Repository is the persistence contract for to-do items. Every lookup,
// update and delete filters by both id and owning user id, so an item is
// never visible to a non-owner.
type Repository interface {
	GetByID(id int, userID string) (*ToDoItem, error)
	ListByOwner(userID string) ([]ToDoItem, error)
	ListByCompletion(userID string, completed bool) ([]ToDoItem, error)
	Create(item *ToDoItem) error
	Update(item *ToDoItem) error
	Delete(id int, userID string) error
	Metrics(userID string) (*Metrics, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id int, userID string) (*ToDoItem, error) {
	var item ToDoItem
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListByOwner(userID string) ([]ToDoItem, error) {
	var items []ToDoItem
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByCompletion(userID string, completed bool) ([]ToDoItem, error) {
	var items []ToDoItem
	err := r.db.Where("user_id = ? AND is_completed = ?", userID, completed).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Create(item *ToDoItem) error {
	return r.db.Create(item).Error
}

func (r *repository) Update(item *ToDoItem) error {
	return r.db.Model(item).
		Select("title", "description", "is_completed").
		Updates(map[string]any{
			"title":        item.Title,
			"description":  item.Description,
			"is_completed": item.IsCompleted,
		}).Error
}

func (r *repository) Delete(id int, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ToDoItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Metrics(userID string) (*Metrics, error) {
	var total, completed int64
	if err := r.db.Model(&ToDoItem{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&ToDoItem{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	return &Metrics{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
	}, nil
}
