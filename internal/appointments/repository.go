package appointments

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, appointment *Appointment) error
	List(ctx context.Context) ([]Appointment, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, appointment *Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *gormRepository) List(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&appointments).Error
	return appointments, err
}

type memoryRepository struct {
	mu           sync.RWMutex
	appointments []Appointment
}

// NewMemoryRepository is used when no database is configured.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, appointment *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = append(r.appointments, *appointment)
	return nil
}

// List returns the newest request first, like the gorm repository.
func (r *memoryRepository) List(_ context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, 0, len(r.appointments))
	for i := len(r.appointments) - 1; i >= 0; i-- {
		out = append(out, r.appointments[i])
	}
	return out, nil
}
