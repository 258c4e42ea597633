// Package signal generates deterministic test signals, either as whole
// buffers from a [Generator] or as phase-continuous streaming [Source]s
// that can feed a real-time callback block by block.
package signal
