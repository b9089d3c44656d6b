package repository_encoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/echofinder/recommendation-engine/domain"
	"github.com/echofinder/recommendation-engine/domain/domain_recsys/recsys_interface"
)

const defaultBatchSize = 64

// textEncoder 外部文本编码服务的HTTP客户端
// 编码服务是无状态的：相同文本永远得到相同向量
type textEncoder struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	batchSize int
}

type encodeRequest struct {
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Vectors [][]float64 `json:"vectors"`
}

func NewTextEncoder(baseURL string, timeout time.Duration, requestsPerSecond float64) recsys_interface.TextEncoder {
	return &textEncoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		batchSize: defaultBatchSize,
	}
}

func (e *textEncoder) Encode(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EncodeBatch 按批提交，整批失败时返回错误（调用方决定按曲目降级）
func (e *textEncoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.encode(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *textEncoder) encode(ctx context.Context, texts []string) ([][]float64, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(encodeRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/encode", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build encode request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Stage: "text_encoder", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.UpstreamError{
			Stage: "text_encoder",
			Err:   fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(payload)),
		}
	}

	var result encodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.UpstreamError{Stage: "text_encoder", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(result.Vectors) != len(texts) {
		return nil, &domain.UpstreamError{
			Stage: "text_encoder",
			Err:   fmt.Errorf("expected %d vectors, got %d", len(texts), len(result.Vectors)),
		}
	}
	return result.Vectors, nil
}
