package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// ClientRepository 客户工作区数据访问层
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建工作区Repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create 创建工作区
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID 按ID获取工作区
func (r *ClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// GetBySlug 按slug获取工作区
func (r *ClientRepository) GetBySlug(slug string) (*models.Client, error) {
	var client models.Client
	err := r.db.Where("slug = ?", slug).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// ExistsBySlug 检查slug是否已被占用
func (r *ClientRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Client{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Update 更新工作区
func (r *ClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// List 获取工作区列表(分页)
func (r *ClientRepository) List(offset, limit int) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	if err := r.db.Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&clients).Error
	return clients, total, err
}
