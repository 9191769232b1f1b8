// Package analysis estimates orbital periods from recorded series.
//
//   - [PowerSpectrum]: magnitude spectrum, zero-padded to a power of two
//   - [SpectralPeriod]: period of the strongest non-DC frequency
//   - [DominantPeriod]: period from mean crossings, robust on short series
//
// A typical input is the distance of one body from the sun sampled once per
// recorded step:
//
//	d, _ := traj.Distance("mars", "sun")
//	days, err := analysis.DominantPeriod(d, meta.Timestep*float64(meta.Every)/86400)
package analysis
