package criteria

import "alcyxob/fitness-tracker/internal/domain"

// Pagination is page based. It is active as soon as a page size is set.
type Pagination struct {
	pageSize   *int
	pageNumber *int
}

// NewPagination rejects bounds below 1.
func NewPagination(pageSize, pageNumber *int) (Pagination, error) {
	if pageSize != nil && *pageSize < 1 {
		return Pagination{}, domain.NewInvalidArgumentError("Page size must be greater than 0, got %d", *pageSize)
	}
	if pageNumber != nil && *pageNumber < 1 {
		return Pagination{}, domain.NewInvalidArgumentError("Page number must be greater than 0, got %d", *pageNumber)
	}
	return Pagination{pageSize: intPtr(pageSize), pageNumber: intPtr(pageNumber)}, nil
}

func NoPagination() Pagination {
	return Pagination{}
}

func (p Pagination) PageSize() *int   { return intPtr(p.pageSize) }
func (p Pagination) PageNumber() *int { return intPtr(p.pageNumber) }

func (p Pagination) HasPagination() bool {
	return p.pageSize != nil
}

// Limit is the page size when one is set.
func (p Pagination) Limit() (int, bool) {
	if p.pageSize == nil {
		return 0, false
	}
	return *p.pageSize, true
}

// Offset is only defined when both page size and page number are set.
func (p Pagination) Offset() (int, bool) {
	if p.pageSize == nil || p.pageNumber == nil {
		return 0, false
	}
	return (*p.pageNumber - 1) * *p.pageSize, true
}

func intPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
