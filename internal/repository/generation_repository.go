package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// GenerationRepository 生成记录数据访问层
type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository 创建生成记录Repository
func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Create 创建生成记录
// 持久化前按selected_image_url规范化图片列表。
func (r *GenerationRepository) Create(gen *models.Generation) error {
	gen.GeneratedImages = models.NormalizeGeneratedImages(gen.GeneratedImages, gen.SelectedImageURL)
	return r.db.Create(gen).Error
}

// GetByIDAndClientID 按ID和工作区获取生成记录
func (r *GenerationRepository) GetByIDAndClientID(id, clientID uint) (*models.Generation, error) {
	var gen models.Generation
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&gen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gen, nil
}

// UpdateFields 部分更新生成记录,只触碰传入的字段
// 更新中包含generated_images时,用同一次调用的selected_image_url
// (未提供则沿用已持久化的值)规范化后再写入。
func (r *GenerationRepository) UpdateFields(id, clientID uint, fields map[string]interface{}) error {
	if raw, ok := fields["generated_images"]; ok {
		images, err := toImageList(raw)
		if err != nil {
			return err
		}

		selectedURL, hasSelected := fields["selected_image_url"].(string)
		if !hasSelected {
			existing, err := r.GetByIDAndClientID(id, clientID)
			if err != nil {
				return err
			}
			if existing == nil {
				return gorm.ErrRecordNotFound
			}
			selectedURL = existing.SelectedImageURL
		}

		fields["generated_images"] = models.NormalizeGeneratedImages(images, selectedURL)
	}

	result := r.db.Model(&models.Generation{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// toImageList 统一UpdateFields中图片字段的两种传入形态
func toImageList(raw interface{}) (models.ImageList, error) {
	switch v := raw.(type) {
	case models.ImageList:
		return v, nil
	case []models.GeneratedImage:
		return models.ImageList(v), nil
	default:
		return nil, errors.New("generated_images字段类型无效")
	}
}

// ListByBatchID 获取批次下的全部生成记录
func (r *GenerationRepository) ListByBatchID(batchID, clientID uint) ([]models.Generation, error) {
	var gens []models.Generation
	err := r.db.Where("batch_id = ? AND client_id = ?", batchID, clientID).
		Order("id ASC").Find(&gens).Error
	return gens, err
}

// ListByClientID 获取工作区的生成历史(分页)
func (r *GenerationRepository) ListByClientID(clientID uint, status string, offset, limit int) ([]models.Generation, int64, error) {
	var gens []models.Generation
	var total int64

	query := r.db.Model(&models.Generation{}).Where("client_id = ?", clientID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&gens).Error
	return gens, total, err
}

// DeleteByIDAndClientID 删除生成记录
func (r *GenerationRepository) DeleteByIDAndClientID(id, clientID uint) error {
	result := r.db.Where("id = ? AND client_id = ?", id, clientID).Delete(&models.Generation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByBatchID 统计批次下各状态的生成记录数量
// 返回in-flight数(pending+processing)、失败数和总数,供批次状态派生使用。
func (r *GenerationRepository) CountByBatchID(batchID, clientID uint) (inFlight, failed, total int64, err error) {
	base := r.db.Model(&models.Generation{}).Where("batch_id = ? AND client_id = ?", batchID, clientID)

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return
	}
	if err = base.Session(&gorm.Session{}).
		Where("status IN ?", []string{models.GenerationStatusPending, models.GenerationStatusProcessing}).
		Count(&inFlight).Error; err != nil {
		return
	}
	err = base.Session(&gorm.Session{}).
		Where("status = ?", models.GenerationStatusFailed).
		Count(&failed).Error
	return
}

// ClearBrandKitRefs 品牌资料删除后置空弱引用
func (r *GenerationRepository) ClearBrandKitRefs(brandKitID, clientID uint) error {
	return r.db.Model(&models.Generation{}).
		Where("brand_kit_id = ? AND client_id = ?", brandKitID, clientID).
		Update("brand_kit_id", nil).Error
}

// ClearTemplateRefs 模板删除后置空弱引用
func (r *GenerationRepository) ClearTemplateRefs(templateID uint) error {
	return r.db.Model(&models.Generation{}).
		Where("template_id = ?", templateID).
		Update("template_id", nil).Error
}
