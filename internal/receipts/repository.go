package receipts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plugevents/internal/shared/constants"
)

// Repository is an append-only receipt store.
type Repository interface {
	Append(ctx context.Context, receipt Receipt) error
	List(ctx context.Context) ([]Receipt, error)
	ListByEmail(ctx context.Context, email string) ([]Receipt, error)
}

// ================== REDIS ==================

// appendScript reads the whole collection, appends one record and writes it
// back in a single atomic step. A reference already present is not appended.
const appendScript = `
	local raw = redis.call('GET', KEYS[1])
	local list = {}
	if raw then
		list = cjson.decode(raw)
	end

	for _, existing in ipairs(list) do
		if existing['reference'] == ARGV[2] then
			return 0
		end
	end

	table.insert(list, cjson.decode(ARGV[1]))
	redis.call('SET', KEYS[1], cjson.encode(list))
	return #list
`

type redisRepository struct {
	client redis.UniversalClient
	key    string
	mu     sync.Mutex
}

// NewRedisRepository stores the collection as one JSON document.
func NewRedisRepository(client redis.UniversalClient) Repository {
	return &redisRepository{client: client, key: constants.KEY_RECEIPTS}
}

func (r *redisRepository) Append(ctx context.Context, receipt Receipt) error {
	if err := receipt.validate(); err != nil {
		return err
	}

	record, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.client.Eval(ctx, appendScript, []string{r.key}, string(record), receipt.Reference).Int64()
	if err != nil {
		return fmt.Errorf("append receipt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateReceipt, receipt.Reference)
	}
	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]Receipt, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Receipt{}, nil
		}
		return nil, fmt.Errorf("read receipts: %w", err)
	}

	// An emptied Lua table encodes as an object rather than an array.
	if string(raw) == "{}" {
		return []Receipt{}, nil
	}

	var all []Receipt
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode receipts: %w", err)
	}
	return all, nil
}

func (r *redisRepository) ListByEmail(ctx context.Context, email string) ([]Receipt, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return filterByEmail(all, email), nil
}

// ================== POSTGRES ==================

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(ctx context.Context, receipt Receipt) error {
	if err := receipt.validate(); err != nil {
		return err
	}
	receipt.ID = 0

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "reference"}}, DoNothing: true}).
		Create(&receipt)
	if result.Error != nil {
		return fmt.Errorf("append receipt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateReceipt, receipt.Reference)
	}
	return nil
}

func (r *gormRepository) List(ctx context.Context) ([]Receipt, error) {
	var all []Receipt
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return all, nil
}

func (r *gormRepository) ListByEmail(ctx context.Context, email string) ([]Receipt, error) {
	var all []Receipt
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Order("id ASC").
		Find(&all).Error
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return all, nil
}

// ================== MEMORY ==================

type memoryRepository struct {
	mu       sync.RWMutex
	receipts []Receipt
}

// NewMemoryRepository keeps receipts for the life of the process.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Append(_ context.Context, receipt Receipt) error {
	if err := receipt.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.receipts {
		if existing.Reference == receipt.Reference {
			return fmt.Errorf("%w: %s", ErrDuplicateReceipt, receipt.Reference)
		}
	}
	r.receipts = append(r.receipts, receipt)
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Receipt{}, r.receipts...), nil
}

func (r *memoryRepository) ListByEmail(ctx context.Context, email string) ([]Receipt, error) {
	all, _ := r.List(ctx)
	return filterByEmail(all, email), nil
}
