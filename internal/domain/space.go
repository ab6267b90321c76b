package domain

// Space a bookable room
type Space string

const (
	SpaceWorldVisionHall Space = "월드비전홀"
	SpaceSunNest         Space = "순보금자리"
	SpaceGreenPasture    Space = "푸른초장"
	SpaceStillWaters     Space = "쉴만한 물가"
	SpaceOverflowingCup  Space = "넘치는 잔"
	SpaceVisionFactory1  Space = "Vision Factory 1"
	SpaceVisionFactory2  Space = "Vision Factory 2"
	SpaceVisionFactory3  Space = "Vision Factory 3"
	SpaceVisionFactory4  Space = "Vision Factory 4"
	SpaceVisionFactory5  Space = "Vision Factory 5"
)

var spaces = []Space{
	SpaceWorldVisionHall,
	SpaceSunNest,
	SpaceGreenPasture,
	SpaceStillWaters,
	SpaceOverflowingCup,
	SpaceVisionFactory1,
	SpaceVisionFactory2,
	SpaceVisionFactory3,
	SpaceVisionFactory4,
	SpaceVisionFactory5,
}

// Spaces returns all spaces in display order
func Spaces() []Space {
	return append([]Space(nil), spaces...)
}

// IsValid returns true if the space is one of the known rooms
func (s Space) IsValid() bool {
	for _, known := range spaces {
		if s == known {
			return true
		}
	}
	return false
}

func (s Space) String() string {
	return string(s)
}
