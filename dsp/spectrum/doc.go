// Package spectrum provides magnitude-spectrum helpers and the running
// average that smooths successive analysis frames for display.
package spectrum
