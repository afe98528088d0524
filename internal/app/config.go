package app

// Config holds runtime wiring options for building the app.
type Config struct {
	Home             string  // data directory, e.g. $HOME/.fuzex
	InputBits        int     // reading length in bits
	MaxHammingErrors int     // tolerated bit flips
	FailureBound     float64 // reproduction failure bound, 0 = default
	ForgeryBound     float64 // forgery bound, 0 = default
	LockerCeiling    int     // planner locker ceiling, 0 = default
}
