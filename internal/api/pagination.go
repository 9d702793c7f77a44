package api

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrInvalidPage 表示頁碼格式錯誤或超過最後一頁
var ErrInvalidPage = errors.New("invalid page")

// Page 是分頁列表的外層格式
type Page[T any] struct {
	Count    int     `json:"count" example:"12"`
	Next     *string `json:"next" example:"http://localhost:8080/api/recipes?page=3"`
	Previous *string `json:"previous" example:"http://localhost:8080/api/recipes?page=1"`
	Results  []T     `json:"results"`
}

// Pagination 是由 ?page= 與 ?limit= 指定的分頁範圍
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// MaxPageSize 是 limit 參數的上限
const MaxPageSize = 100

// maxOffset 讓 OFFSET 不會溢位
const maxOffset = 1<<31 - 1

// ParsePagination 讀取 page (從 1 起算) 與 limit；limit 缺少或非正數時使用
// defaultLimit，超過 MaxPageSize 時截斷
func ParsePagination(c echo.Context, defaultLimit int) (Pagination, error) {
	p := Pagination{Page: 1, Limit: defaultLimit}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = min(n, MaxPageSize)
		}
	}
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || (n-1) > int64(maxOffset/p.Limit) {
			return p, ErrInvalidPage
		}
		p.Page = int(n)
	}
	return p, nil
}

// NewPage 包裝一頁結果；超過最後一頁會被拒絕，
// 但列表為空時第 1 頁仍然有效
func NewPage[T any](c echo.Context, p Pagination, count int, results []T) (Page[T], error) {
	if p.Page > 1 && p.Offset() >= count {
		return Page[T]{}, ErrInvalidPage
	}
	page := Page[T]{Count: count, Results: results}
	if p.Offset()+p.Limit < count {
		page.Next = pageURL(c, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageURL(c, p.Page-1)
	}
	return page, nil
}

// pageURL 以新的 page 重建完整請求 URL，第 1 頁則省略該參數
func pageURL(c echo.Context, page int) *string {
	req := c.Request()
	u := url.URL{
		Scheme: c.Scheme(),
		Host:   req.Host,
		Path:   req.URL.Path,
	}
	q := req.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
