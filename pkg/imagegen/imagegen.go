package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrorCode 图片服务错误码
type ErrorCode string

const (
	ErrCodeMissingCredentials ErrorCode = "missing_credentials" // 未配置API密钥,不会发起调用
	ErrCodeTimeout            ErrorCode = "timeout"             // 调用超时
	ErrCodeProvider           ErrorCode = "provider_error"      // 服务端返回错误
)

// Error 图片服务调用错误,封闭的错误分类
type Error struct {
	Code    ErrorCode
	Message string
}

// Error 实现error接口
func (e *Error) Error() string {
	return fmt.Sprintf("imagegen [%s]: %s", e.Code, e.Message)
}

// AsError 从error中提取*Error
func AsError(err error) (*Error, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// 画幅预设,按宽高比映射到像素尺寸
var aspectPresets = map[string][2]int{
	"1:1":  {1024, 1024},
	"4:5":  {896, 1120},
	"9:16": {768, 1344},
	"16:9": {1344, 768},
	"3:2":  {1216, 832},
}

// DefaultAspect 默认画幅
const DefaultAspect = "1:1"

// AspectPresets 返回支持的画幅预设列表
func AspectPresets() []string {
	keys := make([]string, 0, len(aspectPresets))
	for k := range aspectPresets {
		keys = append(keys, k)
	}
	return keys
}

// IsValidAspect 判断画幅预设是否有效
func IsValidAspect(aspect string) bool {
	_, ok := aspectPresets[aspect]
	return ok
}

// ResolveAspect 将画幅预设解析为像素尺寸,无效时回退默认画幅
func ResolveAspect(aspect string) (width, height int) {
	dims, ok := aspectPresets[aspect]
	if !ok {
		dims = aspectPresets[DefaultAspect]
	}
	return dims[0], dims[1]
}

// GenerateRequest 生成请求参数
type GenerateRequest struct {
	Prompt      string
	Aspect      string // 画幅预设,见aspectPresets
	NumVariants int    // 1-4

	// 以下两项同时提供时走图生图,否则走文生图
	SourceImageURL string
	Strength       float64 // 去噪强度 0-1
}

// GeneratedImage 单张生成结果
type GeneratedImage struct {
	URL         string `json:"url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ContentType string `json:"content_type"`
}

// GenerateResult 生成结果
type GenerateResult struct {
	Images    []GeneratedImage `json:"images"`
	Seed      int64            `json:"seed"`
	RequestID string           `json:"request_id"`
	Model     string           `json:"model"`
}

// Generator 图片生成服务抽象
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
}

// Client 图片生成服务HTTP客户端
type Client struct {
	client  *http.Client
	apiBase string
	apiKey  string
	model   string
	timeout time.Duration
}

// NewClient 创建图片生成客户端
func NewClient(apiBase, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		apiBase: apiBase,
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

// apiResponse 服务端响应格式
type apiResponse struct {
	RequestID string `json:"request_id"`
	Seed      int64  `json:"seed"`
	Model     string `json:"model"`
	Images    []struct {
		URL         string `json:"url"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ContentType string `json:"content_type"`
	} `json:"images"`
	Error string `json:"error"`
}

// Generate 调用图片生成服务
// 单次调用受超时约束,超时按ErrCodeTimeout上报,内部不做重试。
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if c.apiKey == "" {
		return nil, &Error{Code: ErrCodeMissingCredentials, Message: "未配置图片服务API密钥"}
	}

	numVariants := req.NumVariants
	if numVariants < 1 {
		numVariants = 1
	}
	if numVariants > 4 {
		numVariants = 4
	}

	width, height := ResolveAspect(req.Aspect)

	// 构建请求体
	reqBody := map[string]interface{}{
		"model":      c.model,
		"prompt":     req.Prompt,
		"width":      width,
		"height":     height,
		"num_images": numVariants,
	}

	// 提供了参考图则走图生图
	if req.SourceImageURL != "" {
		reqBody["image_url"] = req.SourceImageURL
		reqBody["strength"] = req.Strength
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("序列化请求失败: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.apiBase + "/v1/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("创建请求失败: %v", err)}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &Error{Code: ErrCodeTimeout, Message: fmt.Sprintf("图片生成超时(%v)", c.timeout)}
		}
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("请求失败: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("读取响应失败: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("图片服务返回错误: status=%d, body=%s", resp.StatusCode, string(body))}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &Error{Code: ErrCodeProvider, Message: fmt.Sprintf("解析响应失败: %v", err)}
	}

	if apiResp.Error != "" {
		return nil, &Error{Code: ErrCodeProvider, Message: apiResp.Error}
	}

	result := &GenerateResult{
		Seed:      apiResp.Seed,
		RequestID: apiResp.RequestID,
		Model:     apiResp.Model,
	}
	if result.RequestID == "" {
		// 服务端未返回request_id时本地生成,保证溯源字段始终可用
		result.RequestID = uuid.NewString()
	}
	if result.Model == "" {
		result.Model = c.model
	}

	for _, img := range apiResp.Images {
		if img.URL == "" {
			continue
		}
		result.Images = append(result.Images, GeneratedImage{
			URL:         img.URL,
			Width:       img.Width,
			Height:      img.Height,
			ContentType: img.ContentType,
		})
	}

	if len(result.Images) == 0 {
		return nil, &Error{Code: ErrCodeProvider, Message: "图片服务未返回任何图片"}
	}

	return result, nil
}
