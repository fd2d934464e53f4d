package widgets

import "math"

const (
	PiDiv180       = math.Pi / 180 // degrees to radians
	OneHalf        = 1.0 / 2.0     // 0.5
	OneHalfFive    = 1.0 / 2.5     // 0.4
	OneThird       = 1.0 / 3.0     // 0.3333333333333333
	OneFourth      = 1.0 / 4.0     // 0.25
	OneFifth       = 1.0 / 5.0     // 0.2
	OneSixth       = 1.0 / 6.0     // 0.16666666666666666
	OneTenth       = 1.0 / 10.0    // 0.1
	OneTwentieth   = 1.0 / 20.0    // 0.05
	OneTwentyFifth = 1.0 / 25.0    // 0.04
	FourThirds     = 4.0 / 3.0     // 1.3333333333333333
)
