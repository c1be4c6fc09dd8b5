package criteria

// Builder composes a Criteria fluently. The first invalid step is
// remembered and returned by Build.
//
//	c, err := criteria.NewBuilder().
//		Equal("userId", userID).
//		Contains("name", "press").
//		OrderByDesc("createdAt").
//		Paginate(20, 1).
//		Build()
type Builder struct {
	filters    []Filter
	order      Order
	pagination Pagination
	err        error
}

func NewBuilder() *Builder {
	return &Builder{order: NoOrder(), pagination: NoPagination()}
}

func (b *Builder) add(field string, op Operator, value any) *Builder {
	if b.err != nil {
		return b
	}
	f, err := NewFilter(field, op, value)
	if err != nil {
		b.err = err
		return b
	}
	b.filters = append(b.filters, f)
	return b
}

func (b *Builder) Equal(field string, value any) *Builder {
	return b.add(field, OperatorEqual, value)
}

func (b *Builder) NotEqual(field string, value any) *Builder {
	return b.add(field, OperatorNotEqual, value)
}

func (b *Builder) GreaterThan(field string, value any) *Builder {
	return b.add(field, OperatorGreaterThan, value)
}

func (b *Builder) GreaterThanOrEqual(field string, value any) *Builder {
	return b.add(field, OperatorGreaterThanOrEqual, value)
}

func (b *Builder) LessThan(field string, value any) *Builder {
	return b.add(field, OperatorLessThan, value)
}

func (b *Builder) LessThanOrEqual(field string, value any) *Builder {
	return b.add(field, OperatorLessThanOrEqual, value)
}

func (b *Builder) Contains(field string, value string) *Builder {
	return b.add(field, OperatorContains, value)
}

func (b *Builder) NotContains(field string, value string) *Builder {
	return b.add(field, OperatorNotContains, value)
}

// In expects values to be a slice, e.g. []string or []float64.
func (b *Builder) In(field string, values any) *Builder {
	return b.add(field, OperatorIn, values)
}

func (b *Builder) NotIn(field string, values any) *Builder {
	return b.add(field, OperatorNotIn, values)
}

func (b *Builder) IsNull(field string) *Builder {
	return b.add(field, OperatorIsNull, nil)
}

func (b *Builder) IsNotNull(field string) *Builder {
	return b.add(field, OperatorIsNotNull, nil)
}

func (b *Builder) OrderByAsc(field string) *Builder {
	b.order = NewOrder(field, OrderAsc)
	return b
}

func (b *Builder) OrderByDesc(field string) *Builder {
	b.order = NewOrder(field, OrderDesc)
	return b
}

// Paginate sets the page size and number. Pass 1 for the first page.
func (b *Builder) Paginate(pageSize, pageNumber int) *Builder {
	if b.err != nil {
		return b
	}
	p, err := NewPagination(&pageSize, &pageNumber)
	if err != nil {
		b.err = err
		return b
	}
	b.pagination = p
	return b
}

func (b *Builder) Build() (Criteria, error) {
	if b.err != nil {
		return Criteria{}, b.err
	}
	return New(b.filters, b.order, b.pagination), nil
}
