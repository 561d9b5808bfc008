package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/domain"
)

// spotsEnvelope /data/api/v1/spots 的响应包装
type spotsEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  struct {
		Items      []domain.SpotReading `json:"items"`
		Pagination struct {
			Page  int `json:"page"`
			Size  int `json:"size"`
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"result"`
}

// SpotsClient 远端查询引擎客户端。
// 和 spots.Engine 满足同一个查询契约：刷新控制器接真实后端时
// 只需要把 QueryFunc 换成这里的 Query。
type SpotsClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewSpotsClient(baseURL string, logger *zap.Logger) *SpotsClient {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &SpotsClient{httpClient: httpClient, logger: logger}
}

// Query 调远端分页查询接口
func (c *SpotsClient) Query(ctx context.Context, req domain.QueryRequest) (domain.QueryResult, error) {
	req = req.Normalize()

	var envelope spotsEnvelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":     strconv.Itoa(req.Page),
			"pageSize": strconv.Itoa(req.PageSize),
			"search":   req.Search,
			"rota":     req.Rota,
			"sortKey":  req.SortKey,
			"sortDir":  string(req.SortDir),
		}).
		SetResult(&envelope).
		Get("/data/api/v1/spots")
	if err != nil {
		c.logger.Error("spots query request failed", zap.Error(err))
		return domain.QueryResult{}, fmt.Errorf("spots query: %w", err)
	}
	if resp.StatusCode() != 200 {
		return domain.QueryResult{}, fmt.Errorf("spots query: unexpected status %d", resp.StatusCode())
	}
	if envelope.Code != 2000 {
		return domain.QueryResult{}, fmt.Errorf("spots query: backend error: %s", envelope.Message)
	}

	rows := envelope.Result.Items
	if rows == nil {
		rows = []domain.SpotReading{}
	}
	return domain.QueryResult{Rows: rows, Total: envelope.Result.Pagination.Total}, nil
}
