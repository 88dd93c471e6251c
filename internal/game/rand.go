package game

// Rand is the random source used for every draw in the simulation.
// *math/rand.Rand satisfies it; tests substitute scripted sequences to
// drive the spawner's decision tree.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}
