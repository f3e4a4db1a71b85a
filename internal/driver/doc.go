// Package driver runs one periodic update loop per sprite.
//
// Each sprite is assigned a behaviour drawn uniformly from the allowed set
// and owns its generator exclusively. On every tick its loop takes one
// transform from the generator and writes it to the surface. Loops share no
// state and run in no particular order relative to each other.
//
//	d, _ := driver.New(driver.DefaultConfig(), motion.NewRegistry(), grid, logger)
//	_ = d.Add(elements...)
//	_ = d.Start(ctx)
//	defer d.Stop()
package driver
