package utils

// BLASImplementation names the BLAS backend behind gonum's dense kernels.
var BLASImplementation = "gonum"
