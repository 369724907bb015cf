// Package embed 提供 core.QueryEmbedder 的实现。
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/recflow/recflow/core"
)

// HTTPEmbedder 通过 OpenAI 风格的 /embeddings 接口把查询文本转为向量。
// 兼容 OpenAI 官方 API 及各类自建的同形态 embedding 服务。
type HTTPEmbedder struct {
	// BaseURL 服务地址，例如 "https://api.openai.com/v1"
	BaseURL string

	// Model 模型名称，例如 "text-embedding-3-small"
	Model string

	// APIKey Bearer 认证凭据（可选，取决于服务端）
	APIKey string

	// Client HTTP 客户端，零值时使用带默认超时的客户端
	Client *http.Client
}

// NewHTTPEmbedder 创建 HTTPEmbedder，默认 30 秒超时。
func NewHTTPEmbedder(baseURL, model, apiKey string) *HTTPEmbedder {
	return &HTTPEmbedder{
		BaseURL: baseURL,
		Model:   model,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// embeddingRequest 是 /embeddings 接口的请求体。
type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

// embeddingResponse 是 /embeddings 接口的响应体。
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (e *HTTPEmbedder) Embed(ctx context.Context, prompt string) ([]float64, error) {
	body, err := json.Marshal(embeddingRequest{Input: prompt, Model: e.Model})
	if err != nil {
		return nil, e.failure("marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, e.failure("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	client := e.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, e.failure("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, e.failure("api status %d: %s", resp.StatusCode, respBody)
	}

	var embResp embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, e.failure("decode response: %v", err)
	}
	if len(embResp.Data) == 0 || len(embResp.Data[0].Embedding) == 0 {
		return nil, e.failure("empty embedding response")
	}

	return embResp.Data[0].Embedding, nil
}

func (e *HTTPEmbedder) failure(format string, args ...any) error {
	return core.NewDomainError(core.ModuleEmbed, core.ErrorCodeEmbedding,
		fmt.Sprintf("embed: "+format, args...))
}

var _ core.QueryEmbedder = (*HTTPEmbedder)(nil)
