package criteria

// Primitives is the wire-safe shape of a Criteria.
type Primitives struct {
	Filters    []FilterPrimitives `json:"filters"`
	OrderBy    *string            `json:"orderBy"`
	OrderType  *string            `json:"orderType"`
	PageSize   *int               `json:"pageSize"`
	PageNumber *int               `json:"pageNumber"`
}

// Criteria is an immutable query specification. Filters are ANDed.
type Criteria struct {
	filters    []Filter
	order      Order
	pagination Pagination
}

func New(filters []Filter, order Order, pagination Pagination) Criteria {
	return Criteria{
		filters:    append([]Filter(nil), filters...),
		order:      order,
		pagination: pagination,
	}
}

// Empty matches everything, unordered and unpaged.
func Empty() Criteria {
	return Criteria{order: NoOrder(), pagination: NoPagination()}
}

// FromPrimitives fails on the first invalid filter, order type or page bound.
func FromPrimitives(p Primitives) (Criteria, error) {
	filters := make([]Filter, 0, len(p.Filters))
	for _, fp := range p.Filters {
		f, err := FilterFromPrimitives(fp)
		if err != nil {
			return Criteria{}, err
		}
		filters = append(filters, f)
	}
	order, err := OrderFromPrimitives(p.OrderBy, p.OrderType)
	if err != nil {
		return Criteria{}, err
	}
	pagination, err := NewPagination(p.PageSize, p.PageNumber)
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{filters: filters, order: order, pagination: pagination}, nil
}

func (c Criteria) ToPrimitives() Primitives {
	filters := make([]FilterPrimitives, len(c.filters))
	for i, f := range c.filters {
		filters[i] = f.ToPrimitives()
	}
	orderBy, orderType := c.order.ToPrimitives()
	return Primitives{
		Filters:    filters,
		OrderBy:    orderBy,
		OrderType:  orderType,
		PageSize:   c.pagination.PageSize(),
		PageNumber: c.pagination.PageNumber(),
	}
}

func (c Criteria) HasFilters() bool    { return len(c.filters) > 0 }
func (c Criteria) HasOrder() bool      { return c.order.HasOrder() }
func (c Criteria) HasPagination() bool { return c.pagination.HasPagination() }

// Filters returns a copy of the filters in their original order.
func (c Criteria) Filters() []Filter {
	return append([]Filter(nil), c.filters...)
}

func (c Criteria) Order() Order           { return c.order }
func (c Criteria) Pagination() Pagination { return c.pagination }

// WithFilter returns a copy of c with f evaluated before the existing filters.
func (c Criteria) WithFilter(f Filter) Criteria {
	filters := make([]Filter, 0, len(c.filters)+1)
	filters = append(filters, f)
	filters = append(filters, c.filters...)
	return Criteria{filters: filters, order: c.order, pagination: c.pagination}
}
