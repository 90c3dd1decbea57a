package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/pkg/imagegen"

	"github.com/sirupsen/logrus"
)

// 批次执行常量
const (
	// BatchWorkerCount 批次内并发worker数量
	// 图片服务对单调用方有速率/延迟约束,小而固定的并发池在摊薄延迟的
	// 同时避免突发限流,与批次大小无关。
	BatchWorkerCount = 3

	// DefaultNumVariants 单任务默认生成的图片变体数
	DefaultNumVariants = 2
)

// 批次提交验证错误
var (
	ErrEmptyBatch    = errors.New("批次任务列表不能为空")
	ErrTooManyItems  = fmt.Errorf("批次任务数量超过上限(%d)", dto.MaxCampaignItems)
	ErrBatchNotFound = errors.New("批次不存在")
)

// GenerationStore 生成记录存储契约
type GenerationStore interface {
	Create(gen *models.Generation) error
	GetByIDAndClientID(id, clientID uint) (*models.Generation, error)
	UpdateFields(id, clientID uint, fields map[string]interface{}) error
	ListByBatchID(batchID, clientID uint) ([]models.Generation, error)
	CountByBatchID(batchID, clientID uint) (inFlight, failed, total int64, err error)
}

// BatchStore 批次存储契约
type BatchStore interface {
	Create(batch *models.CampaignBatch) error
	GetByIDAndClientID(id, clientID uint) (*models.CampaignBatch, error)
	UpdateStatus(id, clientID uint, status string) error
	ListByClientID(clientID uint, offset, limit int) ([]models.CampaignBatch, int64, error)
}

// CampaignService 营销活动批次编排器
// 把客户端提交的任务列表展开为生成记录,在固定并发池中异步执行,
// 并在每个任务结束后重算批次聚合状态。
type CampaignService struct {
	genStore        GenerationStore
	batchStore      BatchStore
	generator       imagegen.Generator
	logger          *logrus.Logger
	denoiseStrength float64

	backgroundWG sync.WaitGroup
}

// NewCampaignService 创建批次编排器
func NewCampaignService(
	genStore GenerationStore,
	batchStore BatchStore,
	generator imagegen.Generator,
	denoiseStrength float64,
	logger *logrus.Logger,
) *CampaignService {
	if denoiseStrength <= 0 || denoiseStrength > 1 {
		denoiseStrength = 0.65
	}
	return &CampaignService{
		genStore:        genStore,
		batchStore:      batchStore,
		generator:       generator,
		logger:          logger,
		denoiseStrength: denoiseStrength,
	}
}

// SubmitBatch 提交批次
// 同步完成验证和记录创建后立即返回,任务执行完全脱离请求周期。
// 验证失败时不产生任何批次或生成记录。
func (s *CampaignService) SubmitBatch(clientID uint, req *dto.SubmitCampaignRequest) (*dto.SubmitCampaignResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(req.Items) > dto.MaxCampaignItems {
		return nil, ErrTooManyItems
	}

	batch := &models.CampaignBatch{
		ClientID:   clientID,
		Goal:       req.Goal,
		TotalItems: len(req.Items),
		Status:     models.BatchStatusRunning,
		Metadata:   models.JSONMap{},
	}
	if err := s.batchStore.Create(batch); err != nil {
		return nil, fmt.Errorf("创建批次记录失败: %w", err)
	}

	// 按列表顺序创建生成记录,position写入metadata作为稳定的单项标识
	// (执行乱序后列表顺序不再是可靠的关联键)
	gens := make([]*models.Generation, 0, len(req.Items))
	created := make([]dto.CampaignItemCreated, 0, len(req.Items))
	for i, item := range req.Items {
		metadata := models.JSONMap{
			"batch_id": batch.ID,
			"position": i,
		}
		if item.Angle != "" {
			metadata["angle"] = item.Angle
		}
		if item.Persona != "" {
			metadata["persona"] = item.Persona
		}
		if item.Rationale != "" {
			metadata["rationale"] = item.Rationale
		}
		if item.ImageSize != "" {
			metadata["image_size"] = item.ImageSize
		}
		if item.NumVariants > 0 {
			metadata["num_variants"] = item.NumVariants
		}

		gen := &models.Generation{
			ClientID:        clientID,
			BatchID:         &batch.ID,
			BrandKitID:      item.BrandKitID,
			TemplateID:      item.TemplateID,
			Prompt:          item.Prompt,
			Headline:        item.Headline,
			BodyCopy:        item.BodyCopy,
			CTA:             item.CTA,
			Concept:         item.Concept,
			Persona:         item.Persona,
			ProductImageURL: item.ProductImageURL,
			Status:          models.GenerationStatusPending,
			Metadata:        metadata,
		}
		if err := s.genStore.Create(gen); err != nil {
			return nil, fmt.Errorf("创建第%d项生成记录失败: %w", i+1, err)
		}

		gens = append(gens, gen)
		created = append(created, dto.CampaignItemCreated{
			Position:     i,
			GenerationID: gen.ID,
			Status:       models.GenerationStatusPending,
		})
	}

	// 后台执行,不阻塞提交请求
	s.backgroundWG.Add(1)
	go func() {
		defer s.backgroundWG.Done()
		s.runBatch(context.Background(), batch.ID, clientID, gens)
	}()

	return &dto.SubmitCampaignResponse{
		BatchID:    batch.ID,
		Status:     models.BatchStatusRunning,
		TotalItems: batch.TotalItems,
		Items:      created,
	}, nil
}

// runBatch 在固定大小的worker池中执行批次任务
// worker从共享通道领取下一项,执行到终态后再领取,直到任务耗尽。
func (s *CampaignService) runBatch(ctx context.Context, batchID, clientID uint, gens []*models.Generation) {
	jobs := make(chan *models.Generation, len(gens))
	for _, gen := range gens {
		jobs <- gen
	}
	close(jobs)

	workers := BatchWorkerCount
	if workers > len(gens) {
		workers = len(gens)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gen := range jobs {
				s.executeItem(ctx, gen)

				// 每个任务结束后重算批次状态,重算失败只记日志,
				// 不能影响兄弟任务
				if err := s.RefreshBatchStatus(batchID, clientID); err != nil {
					s.logger.WithFields(logrus.Fields{
						"batch_id":      batchID,
						"generation_id": gen.ID,
					}).Errorf("重算批次状态失败: %v", err)
				}
			}
		}()
	}

	wg.Wait()

	s.logger.WithField("batch_id", batchID).Info("批次执行完成")
}

// executeItem 执行单个生成任务
// 生命周期: pending → processing → done/failed,到达终态后不再变化。
// 任何失败都落在该任务自身,不向外传播。
func (s *CampaignService) executeItem(ctx context.Context, gen *models.Generation) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("generation_id", gen.ID).Errorf("任务执行panic: %v", r)
			s.failGeneration(gen, fmt.Sprintf("内部错误: %v", r))
		}
	}()

	if err := s.genStore.UpdateFields(gen.ID, gen.ClientID, map[string]interface{}{
		"status": models.GenerationStatusProcessing,
	}); err != nil {
		s.logger.WithField("generation_id", gen.ID).Errorf("更新任务状态失败: %v", err)
	}

	// 解析调用参数,携带产品图时以固定去噪强度走图生图
	req := &imagegen.GenerateRequest{
		Prompt:      gen.Prompt,
		Aspect:      metadataString(gen.Metadata, "image_size"),
		NumVariants: metadataInt(gen.Metadata, "num_variants", DefaultNumVariants),
	}
	if gen.ProductImageURL != "" {
		req.SourceImageURL = gen.ProductImageURL
		req.Strength = s.denoiseStrength
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.logger.WithField("generation_id", gen.ID).Warnf("图片生成失败: %v", err)
		s.failGeneration(gen, err.Error())
		return
	}

	images := make(models.ImageList, 0, len(result.Images))
	for _, img := range result.Images {
		images = append(images, models.GeneratedImage{
			URL:         img.URL,
			Width:       img.Width,
			Height:      img.Height,
			ContentType: img.ContentType,
		})
	}

	// 首张图作为主图
	selectedURL := ""
	if len(images) > 0 {
		selectedURL = images[0].URL
	}

	// 合并溯源信息,不能覆盖创建时写入的metadata键
	metadata := models.JSONMap{}
	for k, v := range gen.Metadata {
		metadata[k] = v
	}
	metadata["request_id"] = result.RequestID
	metadata["seed"] = result.Seed
	metadata["model"] = result.Model

	if err := s.genStore.UpdateFields(gen.ID, gen.ClientID, map[string]interface{}{
		"status":             models.GenerationStatusDone,
		"generated_images":   images,
		"selected_image_url": selectedURL,
		"metadata":           metadata,
	}); err != nil {
		s.logger.WithField("generation_id", gen.ID).Errorf("写入生成结果失败: %v", err)
	}
}

// failGeneration 将任务标记为失败,不重试
func (s *CampaignService) failGeneration(gen *models.Generation, message string) {
	if err := s.genStore.UpdateFields(gen.ID, gen.ClientID, map[string]interface{}{
		"status":        models.GenerationStatusFailed,
		"error_message": message,
	}); err != nil {
		s.logger.WithField("generation_id", gen.ID).Errorf("写入失败状态失败: %v", err)
	}
}

// RefreshBatchStatus 从子生成记录重算并持久化批次聚合状态
// 纯重算而非增量计数,并发worker的写入可交换,无需事务。
func (s *CampaignService) RefreshBatchStatus(batchID, clientID uint) error {
	inFlight, failed, total, err := s.genStore.CountByBatchID(batchID, clientID)
	if err != nil {
		return fmt.Errorf("统计批次子记录失败: %w", err)
	}

	status := models.DeriveBatchStatus(inFlight, failed, total)
	if err := s.batchStore.UpdateStatus(batchID, clientID, status); err != nil {
		return fmt.Errorf("更新批次状态失败: %w", err)
	}
	return nil
}

// GetBatch 获取批次详情及重建的单项视图
// 调用方轮询该接口直到聚合状态离开running。
func (s *CampaignService) GetBatch(batchID, clientID uint) (*dto.BatchDetailResponse, error) {
	batch, err := s.batchStore.GetByIDAndClientID(batchID, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询批次失败: %w", err)
	}
	if batch == nil {
		return nil, ErrBatchNotFound
	}

	gens, err := s.genStore.ListByBatchID(batchID, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询批次子记录失败: %w", err)
	}

	items := make([]dto.BatchItemView, 0, len(gens))
	for _, gen := range gens {
		imageURL := gen.SelectedImageURL
		if imageURL == "" && len(gen.GeneratedImages) > 0 {
			imageURL = gen.GeneratedImages[0].URL
		}

		items = append(items, dto.BatchItemView{
			Position:     metadataInt(gen.Metadata, "position", 0),
			GenerationID: gen.ID,
			Persona:      gen.Persona,
			Angle:        metadataString(gen.Metadata, "angle"),
			Status:       gen.Status,
			Prompt:       gen.Prompt,
			Headline:     gen.Headline,
			Concept:      gen.Concept,
			ImageURL:     imageURL,
			Error:        gen.ErrorMessage,
			CreatedAt:    gen.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})

	return &dto.BatchDetailResponse{
		ID:         batch.ID,
		Goal:       batch.Goal,
		Status:     batch.Status,
		TotalItems: batch.TotalItems,
		CreatedAt:  batch.CreatedAt,
		Items:      items,
	}, nil
}

// ListBatches 获取工作区的批次列表
func (s *CampaignService) ListBatches(clientID uint, offset, limit int) ([]models.CampaignBatch, int64, error) {
	return s.batchStore.ListByClientID(clientID, offset, limit)
}

// Wait 等待所有后台批次执行结束,用于优雅停机和测试
func (s *CampaignService) Wait() {
	s.backgroundWG.Wait()
}

// metadataString 从metadata读取字符串字段
func metadataString(m models.JSONMap, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// metadataInt 从metadata读取整数字段
// JSON反序列化后数字为float64,两种类型都要处理。
func metadataInt(m models.JSONMap, key string, defaultVal int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultVal
}
