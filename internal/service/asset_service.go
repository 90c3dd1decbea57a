package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"adgen-go/internal/config"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"

	"github.com/google/uuid"
)

// ErrAssetNotFound 素材不存在
var ErrAssetNotFound = errors.New("素材不存在")

// AssetService 素材上传服务
type AssetService struct {
	assetRepo *repository.AssetRepository
	cfg       *config.Config
}

// NewAssetService 创建素材服务
func NewAssetService(assetRepo *repository.AssetRepository, cfg *config.Config) *AssetService {
	return &AssetService{assetRepo: assetRepo, cfg: cfg}
}

// Upload 处理素材上传
// 验证内容类型和大小后以uuid对象键落盘,避免文件名冲突和路径注入。
func (s *AssetService) Upload(clientID uint, fileHeader *multipart.FileHeader) (*models.Asset, error) {
	if fileHeader.Size > s.cfg.Upload.GetMaxSizeBytes() {
		return nil, fmt.Errorf("文件大小超过上限(%dMB)", s.cfg.Upload.MaxSizeMB)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.isAllowedType(contentType) {
		return nil, fmt.Errorf("不支持的文件类型: %s", contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	defer src.Close()

	objectKey := uuid.NewString() + extensionFor(contentType, fileHeader.Filename)
	dstPath := filepath.Join(s.cfg.Upload.Dir, objectKey)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("创建存储文件失败: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("写入存储文件失败: %w", err)
	}

	asset := &models.Asset{
		ClientID:    clientID,
		Filename:    filepath.Base(fileHeader.Filename),
		ObjectKey:   objectKey,
		URL:         s.publicURL(objectKey),
		ContentType: contentType,
		FileSize:    written,
		Kind:        "image",
	}
	if err := s.assetRepo.Create(asset); err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("创建素材记录失败: %w", err)
	}

	return asset, nil
}

// isAllowedType 检查内容类型白名单
func (s *AssetService) isAllowedType(contentType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

// extensionFor 推断存储文件扩展名
func extensionFor(contentType, filename string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".bin"
}

// publicURL 拼接素材的公开访问URL
func (s *AssetService) publicURL(objectKey string) string {
	base := strings.TrimRight(s.cfg.Server.PublicBaseURL, "/")
	return base + "/uploads/" + objectKey
}

// Get 获取素材
func (s *AssetService) Get(id, clientID uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByIDAndClientID(id, clientID)
	if err != nil {
		return nil, fmt.Errorf("查询素材失败: %w", err)
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

// List 获取工作区的素材列表
func (s *AssetService) List(clientID uint, offset, limit int) ([]models.Asset, int64, error) {
	return s.assetRepo.ListByClientID(clientID, offset, limit)
}

// Delete 删除素材记录及落盘文件
func (s *AssetService) Delete(id, clientID uint) error {
	asset, err := s.Get(id, clientID)
	if err != nil {
		return err
	}

	if err := s.assetRepo.DeleteByIDAndClientID(id, clientID); err != nil {
		return err
	}

	// 文件清理失败不影响记录删除
	_ = os.Remove(filepath.Join(s.cfg.Upload.Dir, asset.ObjectKey))
	return nil
}
