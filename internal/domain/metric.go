package domain

// MetricType is what kind of quantity an exercise metric measures.
type MetricType string

const (
	MetricTypeCount    MetricType = "count"
	MetricTypeWeight   MetricType = "weight"
	MetricTypeDuration MetricType = "duration"
	MetricTypeDistance MetricType = "distance"
)

var metricTypes = []MetricType{MetricTypeCount, MetricTypeWeight, MetricTypeDuration, MetricTypeDistance}

func ParseMetricType(value string) (MetricType, error) {
	return parseEnum("metric type", "types", value, metricTypes)
}

// MetricRelation tells whether a higher value means more effort (direct) or less (inverse).
type MetricRelation string

const (
	MetricRelationDirect  MetricRelation = "direct"
	MetricRelationInverse MetricRelation = "inverse"
)

var metricRelations = []MetricRelation{MetricRelationDirect, MetricRelationInverse}

func ParseMetricRelation(value string) (MetricRelation, error) {
	return parseEnum("metric relation", "relations", value, metricRelations)
}

// MetricUnit is the unit a recorded or target value is expressed in.
type MetricUnit string

const (
	MetricUnitQuantity     MetricUnit = "quantity"
	MetricUnitSeconds      MetricUnit = "seconds"
	MetricUnitMilliseconds MetricUnit = "milliseconds"
	MetricUnitKilograms    MetricUnit = "kilograms"
	MetricUnitPounds       MetricUnit = "pounds"
	MetricUnitMeters       MetricUnit = "meters"
	MetricUnitKilometers   MetricUnit = "kilometers"
	MetricUnitMiles        MetricUnit = "miles"
)

var metricUnits = []MetricUnit{
	MetricUnitQuantity,
	MetricUnitSeconds,
	MetricUnitMilliseconds,
	MetricUnitKilograms,
	MetricUnitPounds,
	MetricUnitMeters,
	MetricUnitKilometers,
	MetricUnitMiles,
}

func ParseMetricUnit(value string) (MetricUnit, error) {
	return parseEnum("metric unit", "units", value, metricUnits)
}

// --- MetricValue ---

type MetricValuePrimitives struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

// MetricValue is a number paired with its unit.
type MetricValue struct {
	value float64
	unit  MetricUnit
}

func NewMetricValue(value float64, unit string) (MetricValue, error) {
	u, err := ParseMetricUnit(unit)
	if err != nil {
		return MetricValue{}, err
	}
	return MetricValue{value: value, unit: u}, nil
}

func MetricValueFromPrimitives(p MetricValuePrimitives) (MetricValue, error) {
	return NewMetricValue(p.Value, p.Unit)
}

func (m MetricValue) Value() float64   { return m.value }
func (m MetricValue) Unit() MetricUnit { return m.unit }

func (m MetricValue) Equals(other MetricValue) bool {
	return m.value == other.value && m.unit == other.unit
}

func (m MetricValue) ToPrimitives() MetricValuePrimitives {
	return MetricValuePrimitives{Value: m.value, Unit: string(m.unit)}
}

func optionalMetricValueFromPrimitives(p *MetricValuePrimitives) (*MetricValue, error) {
	if p == nil {
		return nil, nil
	}
	v, err := MetricValueFromPrimitives(*p)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalMetricValueToPrimitives(v *MetricValue) *MetricValuePrimitives {
	if v == nil {
		return nil
	}
	p := v.ToPrimitives()
	return &p
}

// --- MetricValueRange ---

type MetricValueRangePrimitives struct {
	Min *MetricValuePrimitives `bson:"min" json:"min"`
	Max *MetricValuePrimitives `bson:"max" json:"max"`
}

// MetricValueRange is a target interval; either bound may be open.
type MetricValueRange struct {
	min *MetricValue
	max *MetricValue
}

func MetricValueRangeFromPrimitives(p MetricValueRangePrimitives) (MetricValueRange, error) {
	minValue, err := optionalMetricValueFromPrimitives(p.Min)
	if err != nil {
		return MetricValueRange{}, err
	}
	maxValue, err := optionalMetricValueFromPrimitives(p.Max)
	if err != nil {
		return MetricValueRange{}, err
	}
	return MetricValueRange{min: minValue, max: maxValue}, nil
}

func (r MetricValueRange) Min() *MetricValue { return r.min }
func (r MetricValueRange) Max() *MetricValue { return r.max }

func (r MetricValueRange) Equals(other MetricValueRange) bool {
	return boundEquals(r.min, other.min) && boundEquals(r.max, other.max)
}

func (r MetricValueRange) ToPrimitives() MetricValueRangePrimitives {
	return MetricValueRangePrimitives{
		Min: optionalMetricValueToPrimitives(r.min),
		Max: optionalMetricValueToPrimitives(r.max),
	}
}

func boundEquals(a, b *MetricValue) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(*b)
}

func optionalRangeFromPrimitives(p *MetricValueRangePrimitives) (*MetricValueRange, error) {
	if p == nil {
		return nil, nil
	}
	r, err := MetricValueRangeFromPrimitives(*p)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func optionalRangeToPrimitives(r *MetricValueRange) *MetricValueRangePrimitives {
	if r == nil {
		return nil
	}
	p := r.ToPrimitives()
	return &p
}
