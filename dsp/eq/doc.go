// Package eq implements a fixed six-band parametric equalizer.
//
// A [Bank] owns six [Stage]s, each a biquad section per channel whose
// coefficient set is swapped atomically by the control side and loaded once
// per block by the audio side. The bank also tracks a solo band, an output
// gain and the analytic magnitude response of every band on a shared
// logarithmic frequency grid, so a display can draw per-band and combined
// curves without touching the audio path.
//
// Control methods ([Bank.SetBandParameter], [Bank.SetSolo],
// [Bank.SetOutputGain], [Bank.SetParameter]) serialize on an internal mutex.
// [Bank.Process] never locks, blocks or allocates.
package eq
