// Package analysis finds the period of recorded motion.
//
//   - [Period]: exact repeat length of a sampled series
//   - [PowerSpectrum] and [DominantPeriod]: FFT-based estimate for series
//     too short to repeat exactly
package analysis
