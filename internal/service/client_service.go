package service

import (
	"errors"
	"fmt"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"
	"adgen-go/internal/utils"
)

// ErrClientNotFound 工作区不存在
var ErrClientNotFound = errors.New("工作区不存在")

// ClientService 客户工作区服务
type ClientService struct {
	clientRepo *repository.ClientRepository
}

// NewClientService 创建工作区服务
func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create 创建工作区,slug由名称生成并保证唯一
func (s *ClientService) Create(req *dto.CreateClientRequest) (*models.Client, error) {
	slug, err := utils.UniqueSlug(req.Name, s.clientRepo.ExistsBySlug)
	if err != nil {
		return nil, fmt.Errorf("生成工作区slug失败: %w", err)
	}

	client := &models.Client{
		Name:        req.Name,
		Slug:        slug,
		Industry:    req.Industry,
		Description: req.Description,
	}
	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("创建工作区失败: %w", err)
	}

	return client, nil
}

// Get 获取工作区
func (s *ClientService) Get(id uint) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询工作区失败: %w", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// Update 更新工作区,名称变更不影响已有slug
func (s *ClientService) Update(id uint, req *dto.UpdateClientRequest) (*models.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Industry != nil {
		client.Industry = *req.Industry
	}
	if req.Description != nil {
		client.Description = *req.Description
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("更新工作区失败: %w", err)
	}
	return client, nil
}

// List 获取工作区列表
func (s *ClientService) List(offset, limit int) ([]models.Client, int64, error) {
	return s.clientRepo.List(offset, limit)
}
