package service

import (
	"errors"
	"fmt"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"
	"adgen-go/internal/utils"
)

// ErrTemplateNotFound 模板不存在
var ErrTemplateNotFound = errors.New("模板不存在")

// TemplateService 创意模板服务
// 管理共享模板库和工作区私有模板。
type TemplateService struct {
	tplRepo *repository.TemplateRepository
	genRepo *repository.GenerationRepository
}

// NewTemplateService 创建模板服务
func NewTemplateService(tplRepo *repository.TemplateRepository, genRepo *repository.GenerationRepository) *TemplateService {
	return &TemplateService{tplRepo: tplRepo, genRepo: genRepo}
}

// Create 创建模板
func (s *TemplateService) Create(clientID uint, req *dto.CreateTemplateRequest) (*models.Template, error) {
	slug, err := utils.UniqueSlug(req.Name, s.tplRepo.ExistsBySlug)
	if err != nil {
		return nil, fmt.Errorf("生成模板slug失败: %w", err)
	}

	tpl := &models.Template{
		Name:           req.Name,
		Slug:           slug,
		Category:       req.Category,
		PromptTemplate: req.PromptTemplate,
		AspectRatio:    req.AspectRatio,
		PreviewURL:     req.PreviewURL,
	}
	if !req.Shared {
		tpl.ClientID = &clientID
	}

	if err := s.tplRepo.Create(tpl); err != nil {
		return nil, fmt.Errorf("创建模板失败: %w", err)
	}
	return tpl, nil
}

// Get 获取模板(私有或共享)
func (s *TemplateService) Get(id, clientID uint) (*models.Template, error) {
	tpl, err := s.tplRepo.GetByIDForClient(id, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

// Update 更新模板,共享模板不允许经工作区接口修改
func (s *TemplateService) Update(id, clientID uint, req *dto.UpdateTemplateRequest) (*models.Template, error) {
	tpl, err := s.Get(id, clientID)
	if err != nil {
		return nil, err
	}
	if tpl.IsShared() {
		return nil, fmt.Errorf("共享模板不允许修改")
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Category != nil {
		tpl.Category = *req.Category
	}
	if req.PromptTemplate != nil {
		tpl.PromptTemplate = *req.PromptTemplate
	}
	if req.AspectRatio != nil {
		tpl.AspectRatio = *req.AspectRatio
	}
	if req.PreviewURL != nil {
		tpl.PreviewURL = *req.PreviewURL
	}

	if err := s.tplRepo.Update(tpl); err != nil {
		return nil, fmt.Errorf("更新模板失败: %w", err)
	}
	return tpl, nil
}

// List 获取工作区可见的模板列表
func (s *TemplateService) List(clientID uint, category string) ([]models.Template, error) {
	return s.tplRepo.ListForClient(clientID, category)
}

// Delete 删除工作区私有模板,并置空生成记录上的弱引用
func (s *TemplateService) Delete(id, clientID uint) error {
	if err := s.tplRepo.DeleteByIDAndClientID(id, clientID); err != nil {
		return err
	}
	return s.genRepo.ClearTemplateRefs(id)
}
