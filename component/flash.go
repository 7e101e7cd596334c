package component

import "time"

// FlashComponent marks an entity that was part of a contact recently
type FlashComponent struct {
	Remaining time.Duration // Time remaining
	Duration  time.Duration // Flash duration
}
