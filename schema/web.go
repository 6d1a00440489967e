package schema

import "time"

type GetStatusResponse struct {
	LatestRound uint64 `json:"latestRound"`
	Accounts    int64  `json:"accounts"`
}

type GetLiquidationsRequest struct {
	Page int `query:"page"`
}

type GetLiquidationsResponse struct {
	Round       uint64              `json:"round"`
	Accounts    []QueueCacheAccount `json:"accounts"`
	CurrentPage int                 `json:"currentPage"`
	TotalPages  int                 `json:"totalPages"`
	TotalItems  int                 `json:"totalItems"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type SearchAccountRequest struct {
	Query string `query:"query"`
}

type SearchAccountResponse struct {
	Round     uint64             `json:"round"`
	Account   *QueueCacheAccount `json:"account,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type GetPositionResponse struct {
	Account QueueCacheAccount `json:"account"`
}
