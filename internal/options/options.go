// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input program file"`
	Batch string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	CyclesPerSecond int    `flag:"cps" usage:"executed cycles per second, 0 runs unthrottled" default:"500"`
	Cycles          uint64 `flag:"cycles" usage:"stop after the given number of cycles, 0 runs until interrupted"`
	Seed            int64  `flag:"seed" usage:"seed of the random number generator, 0 seeds from the current time"`
	Continue        bool   `flag:"continue" usage:"skip unknown instructions instead of stopping"`
	Debug           bool   `flag:"debug" usage:"enable debug logging"`
	Quiet           bool   `flag:"q" usage:"quiet mode"`
	Version         bool   `flag:"version" usage:"print the version and exit"`
}

// OutputFlags contains output options.
type OutputFlags struct {
	List  bool `flag:"list" usage:"print an instruction listing of the program instead of running it"`
	Trace bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Frame bool `flag:"frame" usage:"print the display after execution ends"`
	Live  bool `flag:"live" usage:"redraw the display on the console while running"`
	Bell  bool `flag:"bell" usage:"ring the terminal bell when the sound timer starts"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	OutputFlags
}
