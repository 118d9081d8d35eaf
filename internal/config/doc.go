// Package config loads the small set of values the core needs from the
// host's configuration file: the BIOS image path and the GDB remote-serial
// stub's enable flag and listen port. It only resolves the values the core
// consumes, not a general-purpose frontend configuration surface.
package config
