// Package scene holds the sprites being animated and the surfaces that
// receive their per-tick transforms.
//
// A [Surface] is the only place a tick has a visible effect. [Grid] is the
// in-memory surface the terminal view polls; [Recorder] keeps every write
// for headless traces; [Fanout] forwards to several surfaces at once.
package scene
