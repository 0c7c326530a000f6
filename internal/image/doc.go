// Package image converts finished frames into presentation formats and
// standard library images, and reads and writes PNG files.
package image
