// Package fifo provides a single-producer/single-consumer sample ring used
// to hand audio from a real-time callback to a background analyser.
//
// The producer never blocks and never allocates: a write that does not fit
// in the free space is dropped whole and counted. The consumer reads the
// oldest ready samples as at most two contiguous spans and releases them
// with [Fifo.FinishedRead]. Cursors are published with sync/atomic only.
package fifo
