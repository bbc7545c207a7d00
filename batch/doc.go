// Package batch runs the flowdecomp engines over whole files.
//
// A run reads every record of its input files, processes the instances on a
// bounded pool of goroutines, renders each instance's output record into
// memory and, only when every instance succeeded, writes the output files.
// A parse or validation error therefore never leaves a partial output file
// behind.
//
// Output records are written in input order regardless of the worker count;
// record i of every output file belongs to record i of the inputs.
//
// Progress is logged with klog: a run summary at Info, one line per instance
// at V(1) and one line per arc at V(2).
package batch
