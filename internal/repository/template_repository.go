package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// TemplateRepository 模板数据访问层
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板Repository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create 创建模板
func (r *TemplateRepository) Create(tpl *models.Template) error {
	return r.db.Create(tpl).Error
}

// GetByIDForClient 获取模板,工作区私有模板或共享模板均可见
func (r *TemplateRepository) GetByIDForClient(id, clientID uint) (*models.Template, error) {
	var tpl models.Template
	err := r.db.Where("id = ? AND (client_id = ? OR client_id IS NULL)", id, clientID).First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tpl, nil
}

// ExistsBySlug 检查slug是否已被占用
func (r *TemplateRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Template{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Update 更新模板
func (r *TemplateRepository) Update(tpl *models.Template) error {
	return r.db.Save(tpl).Error
}

// ListForClient 获取工作区可见的模板(私有+共享,可按分类过滤)
func (r *TemplateRepository) ListForClient(clientID uint, category string) ([]models.Template, error) {
	var tpls []models.Template
	query := r.db.Where("client_id = ? OR client_id IS NULL", clientID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at DESC").Find(&tpls).Error
	return tpls, err
}

// DeleteByIDAndClientID 删除工作区私有模板(共享模板不可经此删除)
func (r *TemplateRepository) DeleteByIDAndClientID(id, clientID uint) error {
	result := r.db.Where("id = ? AND client_id = ?", id, clientID).Delete(&models.Template{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
