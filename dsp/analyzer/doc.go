// Package analyzer runs a background spectrum analysis of an audio stream.
//
// The audio goroutine hands blocks to [Analyzer.AddAudioData], which
// mono-reduces them into a lock-free FIFO and never blocks. A worker
// goroutine started with [Analyzer.Start] waits for data (or a timeout),
// then repeatedly takes FFT-sized frames, applies a window normalised to
// unit coherent gain, transforms them and folds the bin magnitudes into a
// running average. Display code polls [Analyzer.CheckDataAvailable] and
// reads the average with [Analyzer.Snapshot] or [Analyzer.CreatePath].
//
// For offline use the worker can be skipped entirely: push data and call
// [Analyzer.AnalyzePending].
package analyzer
