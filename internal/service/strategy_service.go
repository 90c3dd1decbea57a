package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/internal/repository"
	"adgen-go/pkg/llm"
	"adgen-go/pkg/redis_limiter"

	"github.com/sirupsen/logrus"
)

// StrategyService 营销策略规划服务
// 调用策略模型把"目标+人群+角度"展开为可编辑的生成任务计划,
// 产出的计划项由客户端确认后提交批次。
type StrategyService struct {
	llmClient    llm.Client
	brandKitRepo *repository.BrandKitRepository
	limiter      *redis_limiter.RedisLimiter
	logger       *logrus.Logger
}

// NewStrategyService 创建策略规划服务
func NewStrategyService(
	llmClient llm.Client,
	brandKitRepo *repository.BrandKitRepository,
	limiter *redis_limiter.RedisLimiter,
	logger *logrus.Logger,
) *StrategyService {
	return &StrategyService{
		llmClient:    llmClient,
		brandKitRepo: brandKitRepo,
		limiter:      limiter,
		logger:       logger,
	}
}

const planSystemPrompt = `你是资深广告创意策略师。根据投放目标、品牌信息、目标人群和创意角度,
为每个"人群×角度"组合输出一条广告创意计划。
只输出JSON数组,不要输出其他内容。每个元素包含字段:
persona, angle, prompt(英文图片生成提示词,具体描述画面), headline, cta, concept, rationale。`

// PlanCampaign 生成人群×角度创意计划
func (s *StrategyService) PlanCampaign(ctx context.Context, clientID uint, req *dto.PlanCampaignRequest) (*dto.PlanCampaignResponse, error) {
	if s.llmClient == nil {
		return nil, fmt.Errorf("未配置策略模型服务")
	}

	// 组装品牌上下文
	var kit *models.BrandKit
	var err error
	if req.BrandKitID != nil {
		kit, err = s.brandKitRepo.GetByIDAndClientID(*req.BrandKitID, clientID)
		if err != nil {
			return nil, fmt.Errorf("查询品牌资料失败: %w", err)
		}
	} else {
		kit, err = s.brandKitRepo.GetDefaultByClientID(clientID)
		if err != nil {
			return nil, fmt.Errorf("查询默认品牌资料失败: %w", err)
		}
	}

	userPrompt := s.buildPlanPrompt(req, kit)

	// 策略模型并发受Redis限制器约束,未部署Redis时直接放行
	limiterKey := s.llmClient.Model()
	if err := s.limiter.Acquire(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("策略模型繁忙,请稍后重试: %w", err)
	}
	defer s.limiter.Release(ctx, limiterKey)

	raw, err := s.llmClient.Complete(ctx, planSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("调用策略模型失败: %w", err)
	}

	items, err := ParsePlannedItems(raw)
	if err != nil {
		s.logger.WithField("client_id", clientID).Warnf("解析策略模型输出失败: %v", err)
		return nil, fmt.Errorf("解析策略模型输出失败: %w", err)
	}

	return &dto.PlanCampaignResponse{
		Goal:  req.Goal,
		Model: s.llmClient.Model(),
		Items: items,
	}, nil
}

// buildPlanPrompt 组装策略规划的用户提示词
func (s *StrategyService) buildPlanPrompt(req *dto.PlanCampaignRequest, kit *models.BrandKit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "投放目标: %s\n", req.Goal)
	fmt.Fprintf(&b, "目标人群: %s\n", strings.Join(req.Personas, "; "))
	fmt.Fprintf(&b, "创意角度: %s\n", strings.Join(req.Angles, "; "))

	if kit != nil {
		fmt.Fprintf(&b, "品牌名称: %s\n", kit.Name)
		if kit.Tone != "" {
			fmt.Fprintf(&b, "品牌语气: %s\n", kit.Tone)
		}
		if len(kit.Colors) > 0 {
			fmt.Fprintf(&b, "品牌色: %s\n", strings.Join(kit.Colors, ", "))
		}
		if kit.Guidelines != "" {
			fmt.Fprintf(&b, "品牌规范: %s\n", kit.Guidelines)
		}
	}

	fmt.Fprintf(&b, "共需输出 %d 条计划(每个人群×角度组合一条)。", len(req.Personas)*len(req.Angles))
	return b.String()
}

// ParsePlannedItems 宽松解析策略模型输出的JSON数组
// 模型偶尔会把JSON包在Markdown代码块里,或在数组前后夹带说明文字,
// 解析时剥离代码块并截取首个数组字面量。
func ParsePlannedItems(raw string) ([]dto.PlannedItem, error) {
	text := strings.TrimSpace(raw)

	// 剥离Markdown代码块
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// 截取首个数组字面量
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("输出中未找到JSON数组")
	}
	text = text[start : end+1]

	var items []dto.PlannedItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("JSON解析失败: %w", err)
	}

	// 丢弃没有提示词的计划项
	valid := make([]dto.PlannedItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Prompt) == "" {
			continue
		}
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("策略模型未产出有效计划项")
	}

	return valid, nil
}
