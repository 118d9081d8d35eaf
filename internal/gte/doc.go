// Package gte implements the PlayStation Geometry Transformation Engine
// (COP2): a fixed-point vector/matrix coprocessor used for 3D transforms,
// lighting and perspective projection.
//
// The register window (64 slots, data 0..31 and control 32..63) and the
// saturating fused multiply-add sequence follow the documented GTE
// pipeline; the packed-register read/write shape follows the same small
// per-field accessor convention used throughout this module's hardware
// registers.
package gte
