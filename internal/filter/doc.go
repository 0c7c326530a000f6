// Package filter implements the post-processing passes run over a finished
// frame: edge marking and distance fog.
//
// Both passes read the fragment buffer (depth, polygon IDs, fog flags) and
// write only the color buffer, in place.
package filter
