package stats

// systemCoordinate is one recorded point of an excursion away from a
// lattice site's basin of attraction.
type systemCoordinate struct {
	time                  float64
	mobilePosition        float64
	nRightPullingCrosslinkers int
}

// TransitionPath records a barrier-crossing excursion's (time, position,
// right-pulling-linker-count) trace, writing only every writeFrequency-th
// point to keep output size bounded on long excursions. Grounded on
// original_source/src/TransitionPath.cpp.
type TransitionPath struct {
	writeFrequency int
	points         []systemCoordinate
}

// NewTransitionPath returns an empty TransitionPath that writes every
// writeFrequency-th recorded point.
func NewTransitionPath(writeFrequency int) *TransitionPath {
	return &TransitionPath{writeFrequency: writeFrequency}
}

// AddPoint appends one sample to the path.
func (t *TransitionPath) AddPoint(time, mobilePosition float64, nRightPullingCrosslinkers int) {
	t.points = append(t.points, systemCoordinate{time, mobilePosition, nRightPullingCrosslinkers})
}

// Clean discards every recorded point, called when an excursion returns to
// the basin of attraction it started from.
func (t *TransitionPath) Clean() { t.points = t.points[:0] }

// Size is the number of points currently recorded.
func (t *TransitionPath) Size() int { return len(t.points) }

// MobilePosition returns the Mobile-filament position of the label-th
// recorded point.
func (t *TransitionPath) MobilePosition(label int) float64 { return t.points[label].mobilePosition }

// NRightPullingLinkers returns the right-pulling-linker count of the
// label-th recorded point.
func (t *TransitionPath) NRightPullingLinkers(label int) int {
	return t.points[label].nRightPullingCrosslinkers
}

// WriteTo appends every writeFrequency-th recorded point, tab-separated, to
// dst, mirroring TransitionPath::operator<<.
func (t *TransitionPath) WriteTo(dst func(format string, args ...interface{})) {
	for label := 0; label < len(t.points); label += t.writeFrequency {
		p := t.points[label]
		dst("%23.15e%23.15e%8d\n", p.time, p.mobilePosition, p.nRightPullingCrosslinkers)
	}
}
