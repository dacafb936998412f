// Package app wires a data source, the projection engine and a plot sink
// into one exploration session for the command line.
package app
