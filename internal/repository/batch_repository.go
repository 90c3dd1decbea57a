package repository

import (
	"errors"

	"adgen-go/internal/models"

	"gorm.io/gorm"
)

// BatchRepository 批次数据访问层
type BatchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次Repository
func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create 创建批次
func (r *BatchRepository) Create(batch *models.CampaignBatch) error {
	return r.db.Create(batch).Error
}

// GetByIDAndClientID 按ID和工作区获取批次
func (r *BatchRepository) GetByIDAndClientID(id, clientID uint) (*models.CampaignBatch, error) {
	var batch models.CampaignBatch
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// UpdateStatus 更新批次聚合状态
// 单列覆盖写,多个worker并发重算时按last-write-wins语义收敛。
func (r *BatchRepository) UpdateStatus(id, clientID uint, status string) error {
	return r.db.Model(&models.CampaignBatch{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Update("status", status).Error
}

// ListByClientID 获取工作区的批次列表(分页)
func (r *BatchRepository) ListByClientID(clientID uint, offset, limit int) ([]models.CampaignBatch, int64, error) {
	var batches []models.CampaignBatch
	var total int64

	query := r.db.Model(&models.CampaignBatch{}).Where("client_id = ?", clientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&batches).Error
	return batches, total, err
}
