// Package chart renders engine results into a tinygo drivers.Displayer.
//
// Curves are drawn as clipped connected segments (non-finite samples break
// the line); contour point clouds are drawn as unconnected markers.
package chart
