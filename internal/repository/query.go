package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// sortable columns shared by the list endpoints
var sortableColumns = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"paternal_surname": true,
	"full_name":        true,
	"email":            true,
	"rut":              true,
	"name":             true,
}

func applyOrder(db *gorm.DB, query *ListQuery, fallback string) *gorm.DB {
	if query.SortBy == "" || !sortableColumns[query.SortBy] {
		return db.Order(fallback)
	}
	order := query.SortBy
	if strings.EqualFold(query.SortDir, "desc") {
		order += " DESC"
	}
	return db.Order(order)
}

func applyPage(db *gorm.DB, query *ListQuery) *gorm.DB {
	if query.PerPage <= 0 {
		return db
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * query.PerPage).Limit(query.PerPage)
}
