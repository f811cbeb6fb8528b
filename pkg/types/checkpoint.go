// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Job names the two directories a single conversion works on.
type Job struct {
	// InputDir holds convert.py and the training-time checkpoint.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the deploy-time checkpoint written by the converter.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Invocation is the fully resolved converter command line.
type Invocation struct {
	// Interpreter is the resolved interpreter binary. Empty until a runtime
	// has been detected.
	Interpreter string `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`

	// Script is the path to convert.py inside the input directory.
	Script string `json:"script" yaml:"script"`

	// Checkpoint is the training-time checkpoint read by the converter.
	Checkpoint string `json:"checkpoint" yaml:"checkpoint"`

	// Output is the deploy-time checkpoint written by the converter.
	Output string `json:"output" yaml:"output"`

	// Architecture identifies the model variant (e.g. "RepVGG-B3").
	Architecture string `json:"architecture" yaml:"architecture"`
}

// ConverterArgs returns the arguments convert.py itself receives, in order:
// script, input checkpoint, output checkpoint, architecture flag.
func (i Invocation) ConverterArgs() []string {
	return []string{
		i.Script,
		i.Checkpoint,
		i.Output,
		"-a=" + i.Architecture,
	}
}

// Argv returns the interpreter arguments. The leading "--" ends interpreter
// option parsing so a script path starting with "-" is not taken as a flag.
func (i Invocation) Argv() []string {
	return append([]string{"--"}, i.ConverterArgs()...)
}
