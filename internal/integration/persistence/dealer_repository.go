package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	"github.com/ezcar24/dealer-backend/internal/domain/entity"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
	"github.com/ezcar24/dealer-backend/internal/integration/persistence/model"
)

// dealerRepository implements the adapter.DealerRepository interface.
type dealerRepository struct {
	db *gorm.DB
}

// NewDealerRepository creates a new dealer repository instance.
func NewDealerRepository(db *gorm.DB) adapter.DealerRepository {
	return &dealerRepository{
		db: db,
	}
}

// FindByID retrieves a dealership by its ID.
func (r *dealerRepository) FindByID(ctx context.Context, dealerID uuid.UUID) (*entity.Dealer, error) {
	var dealerModel model.DealerModel
	result := r.db.WithContext(ctx).Where("id = ?", dealerID).First(&dealerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDealerNotFound
		}
		return nil, result.Error
	}
	return dealerModel.ToEntity(), nil
}

// ListDigestRecipients returns every user who opted into dashboard digests,
// grouped by dealership.
func (r *dealerRepository) ListDigestRecipients(ctx context.Context) ([]*entity.DealerUser, error) {
	var userModels []model.DealerUserModel
	result := r.db.WithContext(ctx).
		Where("digest_enabled = ?", true).
		Where("email <> ''").
		Order("dealer_id ASC, created_at ASC").
		Find(&userModels)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]*entity.DealerUser, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToEntity()
	}
	return users, nil
}
