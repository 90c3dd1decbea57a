package service

import (
	"context"
	"errors"
	"fmt"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"

	"github.com/sirupsen/logrus"
)

// ErrGenerationNotFound 生成记录不存在
var ErrGenerationNotFound = errors.New("生成记录不存在")

// GenerationService 生成记录服务
// 负责批次之外的单次生成提交和生成历史的CRUD。
type GenerationService struct {
	genRepo  *repository.GenerationRepository
	campaign *CampaignService
	logger   *logrus.Logger
}

// NewGenerationService 创建生成记录服务
func NewGenerationService(genRepo *repository.GenerationRepository, campaign *CampaignService, logger *logrus.Logger) *GenerationService {
	return &GenerationService{
		genRepo:  genRepo,
		campaign: campaign,
		logger:   logger,
	}
}

// Create 提交单次生成
// 与批次任务走同一条执行路径,但不关联任何批次,也不触发批次状态重算。
func (s *GenerationService) Create(clientID uint, req *dto.CreateGenerationRequest) (*models.Generation, error) {
	metadata := models.JSONMap{}
	if req.ImageSize != "" {
		metadata["image_size"] = req.ImageSize
	}
	if req.NumVariants > 0 {
		metadata["num_variants"] = req.NumVariants
	}

	gen := &models.Generation{
		ClientID:        clientID,
		BrandKitID:      req.BrandKitID,
		TemplateID:      req.TemplateID,
		Prompt:          req.Prompt,
		Headline:        req.Headline,
		BodyCopy:        req.BodyCopy,
		CTA:             req.CTA,
		Concept:         req.Concept,
		Persona:         req.Persona,
		ProductImageURL: req.ProductImageURL,
		AssetRefs:       models.JSONList(req.AssetRefs),
		Status:          models.GenerationStatusPending,
		Metadata:        metadata,
	}
	if err := s.genRepo.Create(gen); err != nil {
		return nil, fmt.Errorf("创建生成记录失败: %w", err)
	}

	// 执行脱离请求周期,调用方通过轮询观察结果
	s.campaign.backgroundWG.Add(1)
	go func() {
		defer s.campaign.backgroundWG.Done()
		s.campaign.executeItem(context.Background(), gen)
	}()

	return gen, nil
}

// Get 获取生成记录
func (s *GenerationService) Get(id, clientID uint) (*models.Generation, error) {
	gen, err := s.genRepo.GetByIDAndClientID(id, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询生成记录失败: %w", err)
	}
	if gen == nil {
		return nil, ErrGenerationNotFound
	}
	return gen, nil
}

// Update 部分更新生成记录
// generated_images与selected_image_url经过存储层规范化后写入。
func (s *GenerationService) Update(id, clientID uint, req *dto.UpdateGenerationRequest) (*models.Generation, error) {
	fields := map[string]interface{}{}
	if req.Headline != nil {
		fields["headline"] = *req.Headline
	}
	if req.BodyCopy != nil {
		fields["body_copy"] = *req.BodyCopy
	}
	if req.CTA != nil {
		fields["cta"] = *req.CTA
	}
	if req.Concept != nil {
		fields["concept"] = *req.Concept
	}
	if req.SelectedImageURL != nil {
		fields["selected_image_url"] = *req.SelectedImageURL
	}
	if req.GeneratedImages != nil {
		fields["generated_images"] = *req.GeneratedImages
	}

	if len(fields) == 0 {
		return s.Get(id, clientID)
	}

	if err := s.genRepo.UpdateFields(id, clientID, fields); err != nil {
		return nil, fmt.Errorf("更新生成记录失败: %w", err)
	}

	return s.Get(id, clientID)
}

// SelectImage 选定主图
// 重新规范化图片列表,使is_selected标记与选定URL保持一致。
func (s *GenerationService) SelectImage(id, clientID uint, imageURL string) (*models.Generation, error) {
	gen, err := s.Get(id, clientID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, img := range gen.GeneratedImages {
		if img.URL == imageURL {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("图片不在该生成记录的结果列表中")
	}

	if err := s.genRepo.UpdateFields(id, clientID, map[string]interface{}{
		"selected_image_url": imageURL,
		"generated_images":   gen.GeneratedImages,
	}); err != nil {
		return nil, fmt.Errorf("更新主图失败: %w", err)
	}

	return s.Get(id, clientID)
}

// List 获取生成历史
func (s *GenerationService) List(clientID uint, query *dto.GenerationListQuery) ([]models.Generation, int64, error) {
	if query.BatchID != nil {
		gens, err := s.genRepo.ListByBatchID(*query.BatchID, clientID)
		if err != nil {
			return nil, 0, err
		}
		return gens, int64(len(gens)), nil
	}

	return s.genRepo.ListByClientID(clientID, query.Status, query.Offset(), query.PerPage)
}

// Delete 删除生成记录
func (s *GenerationService) Delete(id, clientID uint) error {
	return s.genRepo.DeleteByIDAndClientID(id, clientID)
}
