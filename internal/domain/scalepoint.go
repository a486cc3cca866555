package domain

// ScalePointRecord is a plugin metadata record describing one scale point.
type ScalePointRecord interface {
	ScalePointLabel() string
	ScalePointValue() float32
}

// ScalePoint is a named discrete value of a plugin control port. It is copied
// out of its record and never changes afterwards.
type ScalePoint struct {
	label string
	value float32
}

func NewScalePoint(record ScalePointRecord) ScalePoint {
	return ScalePoint{
		label: record.ScalePointLabel(),
		value: record.ScalePointValue(),
	}
}

func (p ScalePoint) Label() string {
	return p.label
}

func (p ScalePoint) Value() float32 {
	return p.value
}
