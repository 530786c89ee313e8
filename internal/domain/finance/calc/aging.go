package calc

// AgingBucket classifies how long an item has been overdue
type AgingBucket string

const (
	AgingCurrent AgingBucket = "Current"
	Aging1To30   AgingBucket = "1-30 days"
	Aging31To60  AgingBucket = "31-60 days"
	Aging61To90  AgingBucket = "61-90 days"
	AgingOver90  AgingBucket = "90+ days"
)

// AgingBuckets lists every bucket in ascending order
var AgingBuckets = []AgingBucket{AgingCurrent, Aging1To30, Aging31To60, Aging61To90, AgingOver90}

// String returns the string representation of AgingBucket
func (b AgingBucket) String() string {
	return string(b)
}

// GetAgingBucket maps days overdue to its bucket. Upper bounds are inclusive,
// so exactly 30 days is still "1-30 days".
func GetAgingBucket(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return AgingCurrent
	case daysOverdue <= 30:
		return Aging1To30
	case daysOverdue <= 60:
		return Aging31To60
	case daysOverdue <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}
