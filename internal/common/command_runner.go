package common

import (
	"context"
	"fmt"

	"resumescore/internal/errors"
)

// CreateInputFunc builds the operation input from the validated file contents
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc logs the start of an operation. May be nil.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// OperationFunc is the signature shared by the scoring operations
type OperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunFileCommand is the shared skeleton of the file-based CLI commands.
// It validates and reads the input files, builds the operation input,
// runs the operation and hands the result to the output layer.
func RunFileCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation OperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	contents, err := NewFileProcessor(logger).ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}

	if logDetails != nil {
		logDetails(input, cmdConfig)
	}

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return NewOutputHandler(logger).HandleOutput(result, cmdConfig)
}
