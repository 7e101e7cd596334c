package core

// Entity is an opaque identifier owned by the host world
// Comparable and hashable; zero is never issued
type Entity uint64
