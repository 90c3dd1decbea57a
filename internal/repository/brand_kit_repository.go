package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// BrandKitRepository 品牌资料数据访问层
type BrandKitRepository struct {
	db *gorm.DB
}

// NewBrandKitRepository 创建品牌资料Repository
func NewBrandKitRepository(db *gorm.DB) *BrandKitRepository {
	return &BrandKitRepository{db: db}
}

// Create 创建品牌资料
func (r *BrandKitRepository) Create(kit *models.BrandKit) error {
	return r.db.Create(kit).Error
}

// GetByIDAndClientID 按ID和工作区获取品牌资料
func (r *BrandKitRepository) GetByIDAndClientID(id, clientID uint) (*models.BrandKit, error) {
	var kit models.BrandKit
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&kit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kit, nil
}

// GetDefaultByClientID 获取工作区的默认品牌资料
func (r *BrandKitRepository) GetDefaultByClientID(clientID uint) (*models.BrandKit, error) {
	var kit models.BrandKit
	err := r.db.Where("client_id = ? AND is_default = ?", clientID, true).First(&kit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &kit, nil
}

// Update 更新品牌资料
func (r *BrandKitRepository) Update(kit *models.BrandKit) error {
	return r.db.Save(kit).Error
}

// ClearDefault 清除工作区现有默认标记
func (r *BrandKitRepository) ClearDefault(clientID uint) error {
	return r.db.Model(&models.BrandKit{}).
		Where("client_id = ? AND is_default = ?", clientID, true).
		Update("is_default", false).Error
}

// ListByClientID 获取工作区的品牌资料列表
func (r *BrandKitRepository) ListByClientID(clientID uint) ([]models.BrandKit, error) {
	var kits []models.BrandKit
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&kits).Error
	return kits, err
}

// DeleteByIDAndClientID 删除品牌资料
func (r *BrandKitRepository) DeleteByIDAndClientID(id, clientID uint) error {
	result := r.db.Where("id = ? AND client_id = ?", id, clientID).Delete(&models.BrandKit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
