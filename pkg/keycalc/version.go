package keycalc

// Version is the current version of the keycalc module.
const Version = "1.0.0"
