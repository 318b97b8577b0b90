package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type designAssetRepository struct {
	db *gorm.DB
}

// NewDesignAssetRepository is the constructor for designAssetRepository.
func NewDesignAssetRepository(db *gorm.DB) repository.DesignAssetRepository {
	return &designAssetRepository{db: db}
}

func (repo *designAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DesignAsset, error) {
	var assetM model.DesignAssetModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&assetM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDesignAssetNotFound
		}

		return nil, errors.Wrap(err, "failed to find design asset by id")
	}

	return toDesignAssetDomain(&assetM), nil
}

func (repo *designAssetRepository) List(ctx context.Context) ([]*entity.DesignAsset, error) {
	var assetModels []*model.DesignAssetModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&assetModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list design assets")
	}

	assets := make([]*entity.DesignAsset, 0, len(assetModels))
	for _, m := range assetModels {
		assets = append(assets, toDesignAssetDomain(m))
	}

	return assets, nil
}

func (repo *designAssetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&model.DesignAssetModel{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count design assets")
	}

	return n, nil
}

func (repo *designAssetRepository) Create(ctx context.Context, asset *entity.DesignAsset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	assetM := fromDesignAssetDomain(asset)

	if err := repo.db.WithContext(ctx).Create(assetM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDesignAssetTypeTaken
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required design asset information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create design asset")
	}

	asset.CreatedAt = assetM.CreatedAt
	asset.UpdatedAt = assetM.UpdatedAt

	return nil
}

func (repo *designAssetRepository) Update(ctx context.Context, asset *entity.DesignAsset) error {
	assetM := fromDesignAssetDomain(asset)
	assetM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).Model(assetM).
		Select("*").
		Omit("id", "type", "created_at").
		Updates(assetM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update design asset")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDesignAssetNotFound
	}

	asset.UpdatedAt = assetM.UpdatedAt

	return nil
}

func (repo *designAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DesignAssetModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete design asset")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDesignAssetNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toDesignAssetDomain(data *model.DesignAssetModel) *entity.DesignAsset {
	if data == nil {
		return nil
	}

	return &entity.DesignAsset{
		ID:             data.ID,
		Name:           data.Name,
		Type:           data.Type,
		MockupImageURL: data.MockupImageURL,
		BasePrice:      data.BasePrice,
		PrintArea: entity.PrintArea{
			Top:    data.PrintAreaTop,
			Left:   data.PrintAreaLeft,
			Width:  data.PrintAreaWidth,
			Height: data.PrintAreaHeight,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromDesignAssetDomain(data *entity.DesignAsset) *model.DesignAssetModel {
	if data == nil {
		return nil
	}

	return &model.DesignAssetModel{
		ID:              data.ID,
		Name:            data.Name,
		Type:            data.Type,
		MockupImageURL:  data.MockupImageURL,
		BasePrice:       data.BasePrice,
		PrintAreaTop:    data.PrintArea.Top,
		PrintAreaLeft:   data.PrintArea.Left,
		PrintAreaWidth:  data.PrintArea.Width,
		PrintAreaHeight: data.PrintArea.Height,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
