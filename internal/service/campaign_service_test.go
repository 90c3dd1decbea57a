package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"adgen-go/internal/dto"
	"adgen-go/internal/models"
	"adgen-go/pkg/imagegen"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerationStore 内存生成记录存储
type fakeGenerationStore struct {
	mu     sync.Mutex
	nextID uint
	gens   map[uint]*models.Generation
}

func newFakeGenerationStore() *fakeGenerationStore {
	return &fakeGenerationStore{nextID: 1, gens: make(map[uint]*models.Generation)}
}

func (s *fakeGenerationStore) Create(gen *models.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen.ID = s.nextID
	s.nextID++
	clone := *gen
	s.gens[gen.ID] = &clone
	return nil
}

func (s *fakeGenerationStore) GetByIDAndClientID(id, clientID uint) (*models.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.gens[id]
	if !ok || gen.ClientID != clientID {
		return nil, nil
	}
	clone := *gen
	return &clone, nil
}

func (s *fakeGenerationStore) UpdateFields(id, clientID uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.gens[id]
	if !ok || gen.ClientID != clientID {
		return fmt.Errorf("记录不存在: %d", id)
	}
	for k, v := range fields {
		switch k {
		case "status":
			gen.Status = v.(string)
		case "generated_images":
			gen.GeneratedImages = v.(models.ImageList)
		case "selected_image_url":
			gen.SelectedImageURL = v.(string)
		case "error_message":
			gen.ErrorMessage = v.(string)
		case "metadata":
			gen.Metadata = v.(models.JSONMap)
		}
	}
	return nil
}

func (s *fakeGenerationStore) ListByBatchID(batchID, clientID uint) ([]models.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Generation
	for id := uint(1); id < s.nextID; id++ {
		gen, ok := s.gens[id]
		if !ok || gen.ClientID != clientID || gen.BatchID == nil || *gen.BatchID != batchID {
			continue
		}
		out = append(out, *gen)
	}
	return out, nil
}

func (s *fakeGenerationStore) CountByBatchID(batchID, clientID uint) (inFlight, failed, total int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, gen := range s.gens {
		if gen.ClientID != clientID || gen.BatchID == nil || *gen.BatchID != batchID {
			continue
		}
		total++
		switch gen.Status {
		case models.GenerationStatusPending, models.GenerationStatusProcessing:
			inFlight++
		case models.GenerationStatusFailed:
			failed++
		}
	}
	return inFlight, failed, total, nil
}

// fakeBatchStore 内存批次存储
type fakeBatchStore struct {
	mu      sync.Mutex
	nextID  uint
	batches map[uint]*models.CampaignBatch
}

func newFakeBatchStore() *fakeBatchStore {
	return &fakeBatchStore{nextID: 1, batches: make(map[uint]*models.CampaignBatch)}
}

func (s *fakeBatchStore) Create(batch *models.CampaignBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch.ID = s.nextID
	s.nextID++
	clone := *batch
	s.batches[batch.ID] = &clone
	return nil
}

func (s *fakeBatchStore) GetByIDAndClientID(id, clientID uint) (*models.CampaignBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[id]
	if !ok || batch.ClientID != clientID {
		return nil, nil
	}
	clone := *batch
	return &clone, nil
}

func (s *fakeBatchStore) UpdateStatus(id, clientID uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[id]
	if !ok || batch.ClientID != clientID {
		return fmt.Errorf("批次不存在: %d", id)
	}
	batch.Status = status
	return nil
}

func (s *fakeBatchStore) ListByClientID(clientID uint, offset, limit int) ([]models.CampaignBatch, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CampaignBatch
	for id := uint(1); id < s.nextID; id++ {
		if batch, ok := s.batches[id]; ok && batch.ClientID == clientID {
			out = append(out, *batch)
		}
	}
	return out, int64(len(out)), nil
}

// fakeGenerator 可编程的图片生成器
// failPrompts中的prompt会失败,同时记录并发峰值。
type fakeGenerator struct {
	mu          sync.Mutex
	failPrompts map[string]bool
	inFlight    int
	maxInFlight int
	calls       int
}

func newFakeGenerator(failPrompts ...string) *fakeGenerator {
	fails := make(map[string]bool, len(failPrompts))
	for _, p := range failPrompts {
		fails[p] = true
	}
	return &fakeGenerator{failPrompts: fails}
}

func (g *fakeGenerator) Generate(ctx context.Context, req *imagegen.GenerateRequest) (*imagegen.GenerateResult, error) {
	g.mu.Lock()
	g.calls++
	g.inFlight++
	if g.inFlight > g.maxInFlight {
		g.maxInFlight = g.inFlight
	}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight--
		g.mu.Unlock()
	}()

	if g.failPrompts[req.Prompt] {
		return nil, &imagegen.Error{Code: imagegen.ErrCodeProvider, Message: "模拟生成失败"}
	}

	return &imagegen.GenerateResult{
		RequestID: "req-" + req.Prompt,
		Seed:      42,
		Model:     "test-model",
		Images: []imagegen.GeneratedImage{
			{URL: "https://cdn.example.com/" + req.Prompt + "-0.jpg", Width: 1024, Height: 1024},
			{URL: "https://cdn.example.com/" + req.Prompt + "-1.jpg", Width: 1024, Height: 1024},
		},
	}, nil
}

func newTestCampaignService(gen imagegen.Generator) (*CampaignService, *fakeGenerationStore, *fakeBatchStore) {
	genStore := newFakeGenerationStore()
	batchStore := newFakeBatchStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewCampaignService(genStore, batchStore, gen, 0.65, logger)
	return svc, genStore, batchStore
}

func submitItems(t *testing.T, svc *CampaignService, prompts ...string) *dto.SubmitCampaignResponse {
	t.Helper()
	items := make([]dto.CampaignItemRequest, 0, len(prompts))
	for _, p := range prompts {
		items = append(items, dto.CampaignItemRequest{Prompt: p})
	}
	resp, err := svc.SubmitBatch(1, &dto.SubmitCampaignRequest{Goal: "夏季促销", Items: items})
	require.NoError(t, err)
	return resp
}

func TestCampaignService_SubmitBatch_AllSucceed(t *testing.T) {
	svc, genStore, batchStore := newTestCampaignService(newFakeGenerator())

	resp := submitItems(t, svc, "p1", "p2", "p3")
	require.Equal(t, models.BatchStatusRunning, resp.Status)
	require.Len(t, resp.Items, 3)

	svc.Wait()

	batch, err := batchStore.GetByIDAndClientID(resp.BatchID, 1)
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Equal(t, models.BatchStatusDone, batch.Status)

	gens, err := genStore.ListByBatchID(resp.BatchID, 1)
	require.NoError(t, err)
	require.Len(t, gens, 3)
	for _, gen := range gens {
		assert.Equal(t, models.GenerationStatusDone, gen.Status)
		require.Len(t, gen.GeneratedImages, 2)
		// 首张图作为主图
		assert.Equal(t, gen.GeneratedImages[0].URL, gen.SelectedImageURL)
	}
}

func TestCampaignService_SubmitBatch_PartialFailureIsDone(t *testing.T) {
	svc, genStore, batchStore := newTestCampaignService(newFakeGenerator("p2"))

	resp := submitItems(t, svc, "p1", "p2", "p3", "p4")
	svc.Wait()

	batch, err := batchStore.GetByIDAndClientID(resp.BatchID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BatchStatusDone, batch.Status)

	gens, err := genStore.ListByBatchID(resp.BatchID, 1)
	require.NoError(t, err)

	statuses := make(map[string]string, len(gens))
	for _, gen := range gens {
		statuses[gen.Prompt] = gen.Status
	}
	assert.Equal(t, models.GenerationStatusDone, statuses["p1"])
	assert.Equal(t, models.GenerationStatusFailed, statuses["p2"])
	assert.Equal(t, models.GenerationStatusDone, statuses["p3"])
	assert.Equal(t, models.GenerationStatusDone, statuses["p4"])

	for _, gen := range gens {
		if gen.Prompt == "p2" {
			assert.NotEmpty(t, gen.ErrorMessage)
			assert.Empty(t, gen.GeneratedImages)
		}
	}
}

func TestCampaignService_SubmitBatch_AllFailed(t *testing.T) {
	svc, _, batchStore := newTestCampaignService(newFakeGenerator("p1", "p2"))

	resp := submitItems(t, svc, "p1", "p2")
	svc.Wait()

	batch, err := batchStore.GetByIDAndClientID(resp.BatchID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BatchStatusFailed, batch.Status)
}

func TestCampaignService_SubmitBatch_RejectsEmpty(t *testing.T) {
	svc, genStore, batchStore := newTestCampaignService(newFakeGenerator())

	_, err := svc.SubmitBatch(1, &dto.SubmitCampaignRequest{Items: nil})
	require.ErrorIs(t, err, ErrEmptyBatch)

	// 验证失败不留下任何记录
	assert.Empty(t, genStore.gens)
	assert.Empty(t, batchStore.batches)
}

func TestCampaignService_SubmitBatch_RejectsOversized(t *testing.T) {
	svc, genStore, batchStore := newTestCampaignService(newFakeGenerator())

	items := make([]dto.CampaignItemRequest, dto.MaxCampaignItems+1)
	for i := range items {
		items[i] = dto.CampaignItemRequest{Prompt: fmt.Sprintf("p%d", i)}
	}
	_, err := svc.SubmitBatch(1, &dto.SubmitCampaignRequest{Items: items})
	require.ErrorIs(t, err, ErrTooManyItems)

	assert.Empty(t, genStore.gens)
	assert.Empty(t, batchStore.batches)
}

func TestCampaignService_ConcurrencyCapped(t *testing.T) {
	gen := newFakeGenerator()
	svc, _, _ := newTestCampaignService(gen)

	prompts := make([]string, 10)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("p%d", i)
	}
	submitItems(t, svc, prompts...)
	svc.Wait()

	assert.Equal(t, 10, gen.calls)
	assert.LessOrEqual(t, gen.maxInFlight, BatchWorkerCount)
}

func TestCampaignService_MetadataMergePreservesCreationKeys(t *testing.T) {
	svc, genStore, _ := newTestCampaignService(newFakeGenerator())

	resp, err := svc.SubmitBatch(1, &dto.SubmitCampaignRequest{
		Goal: "新品上市",
		Items: []dto.CampaignItemRequest{
			{Prompt: "p1", Persona: "都市白领", Angle: "功能卖点", Rationale: "通勤场景契合"},
		},
	})
	require.NoError(t, err)
	svc.Wait()

	gens, err := genStore.ListByBatchID(resp.BatchID, 1)
	require.NoError(t, err)
	require.Len(t, gens, 1)

	metadata := gens[0].Metadata
	// 创建时写入的键完整保留
	assert.Equal(t, "功能卖点", metadata["angle"])
	assert.Equal(t, "通勤场景契合", metadata["rationale"])
	assert.Equal(t, 0, metadataInt(metadata, "position", -1))
	// 执行后补充溯源键
	assert.Equal(t, "req-p1", metadata["request_id"])
	assert.Equal(t, "test-model", metadata["model"])
}

func TestCampaignService_GetBatch_OrderedByPosition(t *testing.T) {
	svc, _, _ := newTestCampaignService(newFakeGenerator())

	resp := submitItems(t, svc, "p0", "p1", "p2", "p3", "p4")
	svc.Wait()

	detail, err := svc.GetBatch(resp.BatchID, 1)
	require.NoError(t, err)
	require.Len(t, detail.Items, 5)

	for i, item := range detail.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, fmt.Sprintf("p%d", i), item.Prompt)
		assert.True(t, strings.HasPrefix(item.ImageURL, "https://cdn.example.com/"))
	}
}

func TestCampaignService_GetBatch_NotFound(t *testing.T) {
	svc, _, _ := newTestCampaignService(newFakeGenerator())

	_, err := svc.GetBatch(999, 1)
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestCampaignService_GetBatch_WrongClientIsNotFound(t *testing.T) {
	svc, _, _ := newTestCampaignService(newFakeGenerator())

	resp := submitItems(t, svc, "p1")
	svc.Wait()

	_, err := svc.GetBatch(resp.BatchID, 2)
	require.ErrorIs(t, err, ErrBatchNotFound)
}
