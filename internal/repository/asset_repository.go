package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// AssetRepository 素材数据访问层
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository 创建素材Repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create 创建素材记录
func (r *AssetRepository) Create(asset *models.Asset) error {
	return r.db.Create(asset).Error
}

// GetByIDAndClientID 按ID和工作区获取素材
func (r *AssetRepository) GetByIDAndClientID(id, clientID uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// ListByClientID 获取工作区的素材列表(分页)
func (r *AssetRepository) ListByClientID(clientID uint, offset, limit int) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	query := r.db.Model(&models.Asset{}).Where("client_id = ?", clientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error
	return assets, total, err
}

// DeleteByIDAndClientID 删除素材记录
func (r *AssetRepository) DeleteByIDAndClientID(id, clientID uint) error {
	result := r.db.Where("id = ? AND client_id = ?", id, clientID).Delete(&models.Asset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
