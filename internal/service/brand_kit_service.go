package service

import (
	"errors"
	"fmt"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"
)

// ErrBrandKitNotFound 品牌资料不存在
var ErrBrandKitNotFound = errors.New("品牌资料不存在")

// BrandKitService 品牌资料服务
type BrandKitService struct {
	kitRepo *repository.BrandKitRepository
	genRepo *repository.GenerationRepository
}

// NewBrandKitService 创建品牌资料服务
func NewBrandKitService(kitRepo *repository.BrandKitRepository, genRepo *repository.GenerationRepository) *BrandKitService {
	return &BrandKitService{kitRepo: kitRepo, genRepo: genRepo}
}

// Create 创建品牌资料
// 标记为默认时先清除工作区现有默认资料。
func (s *BrandKitService) Create(clientID uint, req *dto.CreateBrandKitRequest) (*models.BrandKit, error) {
	if req.IsDefault {
		if err := s.kitRepo.ClearDefault(clientID); err != nil {
			return nil, fmt.Errorf("清除默认品牌资料失败: %w", err)
		}
	}

	kit := &models.BrandKit{
		ClientID:   clientID,
		Name:       req.Name,
		Colors:     models.JSONList(req.Colors),
		Fonts:      models.JSONList(req.Fonts),
		Tone:       req.Tone,
		LogoURL:    req.LogoURL,
		Guidelines: req.Guidelines,
		IsDefault:  req.IsDefault,
	}
	if err := s.kitRepo.Create(kit); err != nil {
		return nil, fmt.Errorf("创建品牌资料失败: %w", err)
	}
	return kit, nil
}

// Get 获取品牌资料
func (s *BrandKitService) Get(id, clientID uint) (*models.BrandKit, error) {
	kit, err := s.kitRepo.GetByIDAndClientID(id, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询品牌资料失败: %w", err)
	}
	if kit == nil {
		return nil, ErrBrandKitNotFound
	}
	return kit, nil
}

// Update 更新品牌资料
func (s *BrandKitService) Update(id, clientID uint, req *dto.UpdateBrandKitRequest) (*models.BrandKit, error) {
	kit, err := s.Get(id, clientID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault != nil && *req.IsDefault && !kit.IsDefault {
		if err := s.kitRepo.ClearDefault(clientID); err != nil {
			return nil, fmt.Errorf("清除默认品牌资料失败: %w", err)
		}
	}

	if req.Name != nil {
		kit.Name = *req.Name
	}
	if req.Colors != nil {
		kit.Colors = models.JSONList(*req.Colors)
	}
	if req.Fonts != nil {
		kit.Fonts = models.JSONList(*req.Fonts)
	}
	if req.Tone != nil {
		kit.Tone = *req.Tone
	}
	if req.LogoURL != nil {
		kit.LogoURL = *req.LogoURL
	}
	if req.Guidelines != nil {
		kit.Guidelines = *req.Guidelines
	}
	if req.IsDefault != nil {
		kit.IsDefault = *req.IsDefault
	}

	if err := s.kitRepo.Update(kit); err != nil {
		return nil, fmt.Errorf("更新品牌资料失败: %w", err)
	}
	return kit, nil
}

// List 获取工作区的品牌资料列表
func (s *BrandKitService) List(clientID uint) ([]models.BrandKit, error) {
	return s.kitRepo.ListByClientID(clientID)
}

// Delete 删除品牌资料,并置空生成记录上的弱引用
func (s *BrandKitService) Delete(id, clientID uint) error {
	if err := s.kitRepo.DeleteByIDAndClientID(id, clientID); err != nil {
		return err
	}
	return s.genRepo.ClearBrandKitRefs(id, clientID)
}
