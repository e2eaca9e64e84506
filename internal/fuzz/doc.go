// Package fuzztests holds fuzz harnesses for the compile pipeline. They
// guard against panics and hangs on arbitrary input and check that every
// successful compile yields a well-formed CFG.
package fuzztests
