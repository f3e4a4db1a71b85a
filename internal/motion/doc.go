// Package motion provides the periodic motion generators that drive sprites.
//
// Every generator is a lazy, infinite and restartable sequence of
// [Transform] values, one per tick:
//
//   - [Triangle]: vertical bounce, a counter rising to a bound and falling back
//   - [Orbit]: circular translation around the sprite's base position
//   - [Spin]: rotation by one degree per tick
//   - [Registry]: the fixed set of named behaviours a driver picks from
//
// # Example
//
//	reg := motion.NewRegistry()
//	gen, _ := reg.Get("orbit-cw", motion.DefaultParams())
//	for i := 0; i < 120; i++ {
//		t := gen.Next()
//		surface.Apply(id, t)
//	}
//
// # Thread Safety
//
// Generators are NOT thread-safe. Each one is owned by exactly one update
// loop.
package motion
