// Package config holds the run configuration shared by the flowdecomp
// binaries.
//
// A Config starts from Default and may be overlaid by a TOML file:
//
//	[perturb]
//	epsilon = 0.5
//	seed = 42
//	weight_type = "int+"
//
//	[run]
//	workers = 4
//
// Command-line flags are applied last by the binaries. Unknown keys in the
// file are rejected. An absent seed means "seed from the process entropy".
package config
