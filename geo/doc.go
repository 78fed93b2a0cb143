// Package geo shifts navigation fixes by a body-frame offset.
//
// Offsets are given in metres along the vessel axes and rotated by heading
// before being converted to degrees with a flat-earth approximation
// (111,320 m per degree). This is accurate for the lever arms found on
// survey vessels and is not meant for long baselines.
package geo
