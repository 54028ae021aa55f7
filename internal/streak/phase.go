package streak

// Phase is where a profile sits in the streak lifecycle.
//
//	NoStreak    --activity-->        ActiveToday (streak=1)
//	ActiveToday --day rolls over-->  AtRisk
//	AtRisk      --activity-->        ActiveToday (streak+1)
//	AtRisk      --day rolls over-->  Broken
//	Broken      --evaluate-->        NoStreak (streak=0)
type Phase int

const (
	NoStreak Phase = iota
	ActiveToday
	AtRisk
	Broken
)

func (p Phase) String() string {
	switch p {
	case NoStreak:
		return "no streak"
	case ActiveToday:
		return "active today"
	case AtRisk:
		return "at risk"
	case Broken:
		return "broken"
	default:
		return "unknown"
	}
}
