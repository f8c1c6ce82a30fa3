package pagination

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkmncore/seriedex/pkg/query"
)

// SortFields wraps []query.SortField with flexible JSON unmarshaling.
// Accepts either a string ("name,-created_at") or an array of SortField objects.
type SortFields []query.SortField

// UnmarshalJSON supports unmarshaling from a comma-separated string or array format.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest represents a client request for a page of data with optional
// search and sorting. Page indexes are zero-based.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and page size.
func (r *PageRequest) Offset() int {
	return r.Page * r.PageSize
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, page_size, search, sort.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	sort := query.ParseSortFields(values.Get("sort"))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Sort:     sort,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	PageSize      int  `json:"page_size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	Last          bool `json:"last"`
}

// NewPageResult creates a PageResult with calculated total pages and last flag.
// TotalPages is ceil(total/pageSize), or 0 when total is 0. Last is true when
// the page index reaches the final page, or when there are no elements at all.
func NewPageResult[T any](content []T, total, page, pageSize int) PageResult[T] {
	totalPages := 0
	if total > 0 && pageSize > 0 {
		totalPages = total / pageSize
		if total%pageSize != 0 {
			totalPages++
		}
	}

	if content == nil {
		content = []T{}
	}

	return PageResult[T]{
		Content:       content,
		Page:          page,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          total == 0 || page >= totalPages-1,
	}
}
