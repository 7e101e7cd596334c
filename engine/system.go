package engine

// System is a per-tick world processor
type System interface {
	Update()
	Priority() int // Lower values run first
}
