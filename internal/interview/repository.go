package interview

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByIDAndUser(id, userID uuid.UUID) (*Interview, error)
	GetByID(id uuid.UUID) (*Interview, error)
	Save(itv *Interview) error
	ListByUser(userID uuid.UUID, status *Status, page, limit int) (*ListResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByIDAndUser(id, userID uuid.UUID) (*Interview, error) {
	var itv Interview
	if err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		First(&itv, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itv, nil
}

func (r *repository) GetByID(id uuid.UUID) (*Interview, error) {
	var itv Interview
	if err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		First(&itv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itv, nil
}

func (r *repository) Save(itv *Interview) error {
	return r.db.Omit("Questions").Save(itv).Error
}

func (r *repository) ListByUser(userID uuid.UUID, status *Status, page, limit int) (*ListResponse, error) {
	query := r.db.Model(&Interview{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var interviews []*Interview
	if err := query.
		Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&interviews).Error; err != nil {
		return nil, err
	}

	return &ListResponse{
		Data: interviews,
		Meta: ListMeta{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
