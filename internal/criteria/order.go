package criteria

import (
	"strings"

	"alcyxob/fitness-tracker/internal/domain"
)

// OrderType is the sort direction. OrderNone means no ordering was requested.
type OrderType string

const (
	OrderAsc  OrderType = "ASC"
	OrderDesc OrderType = "DESC"
	OrderNone OrderType = "NONE"
)

// ParseOrderType is case-insensitive. A nil value yields OrderNone.
func ParseOrderType(value *string) (OrderType, error) {
	if value == nil {
		return OrderNone, nil
	}
	switch t := OrderType(strings.ToUpper(*value)); t {
	case OrderAsc, OrderDesc, OrderNone:
		return t, nil
	default:
		return "", domain.NewInvalidArgumentError("Invalid order type: %s. Valid order types: ASC, DESC, NONE", *value)
	}
}

// Order sorts by one logical field.
type Order struct {
	field     string
	orderType OrderType
}

// NewOrder returns a NONE order whenever field is empty.
func NewOrder(field string, orderType OrderType) Order {
	if field == "" {
		return Order{orderType: OrderNone}
	}
	return Order{field: field, orderType: orderType}
}

func NoOrder() Order {
	return Order{orderType: OrderNone}
}

// OrderFromPrimitives builds an Order from the orderBy/orderType pair of a Criteria.
func OrderFromPrimitives(orderBy, orderType *string) (Order, error) {
	t, err := ParseOrderType(orderType)
	if err != nil {
		return Order{}, err
	}
	if orderBy == nil {
		return NoOrder(), nil
	}
	return NewOrder(*orderBy, t), nil
}

func (o Order) Field() string        { return o.field }
func (o Order) OrderType() OrderType { return o.orderType }

func (o Order) HasOrder() bool {
	return o.field != "" && o.orderType != OrderNone
}

func (o Order) IsDesc() bool {
	return o.orderType == OrderDesc
}

// ToPrimitives keeps orderBy even when the direction is NONE so that a
// field without direction survives a round trip.
func (o Order) ToPrimitives() (orderBy, orderType *string) {
	if o.field != "" {
		f := o.field
		orderBy = &f
	}
	if o.orderType != OrderNone {
		t := string(o.orderType)
		orderType = &t
	}
	return orderBy, orderType
}
