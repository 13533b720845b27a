// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error display and exit codes for keeper commands.
//
// Commands always return errors; Execute displays them once and picks the
// exit code from the error's type.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/keeper/internal/config"
	"github.com/jeranaias/keeper/internal/ollama"
	"github.com/jeranaias/keeper/internal/residency"
	"github.com/jeranaias/keeper/internal/status"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the runtime could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates the model does not exist
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// ExitCode determines the exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var verrs config.ValidateErrors
	switch {
	case errors.As(err, &verrs):
		return ExitConfigError
	case errors.Is(err, residency.ErrNoModel):
		return ExitUsageError
	case ollama.IsModelNotFound(err):
		return ExitNotFoundError
	case ollama.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case ollama.IsNotRunning(err), isConnectionError(err):
		return ExitNetworkError
	}
	return ExitGeneralError
}

func isConnectionError(err error) bool {
	var connErr *status.ConnectionError
	return errors.As(err, &connErr)
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w with a hint for the common failure modes.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}

	r := newRenderer(w)
	label := r.NewStyle().Bold(true).Foreground(errorColor).Render("[ERROR]")
	fmt.Fprintf(w, "%s %s\n", label, err.Error())

	if hint := errorHint(err); hint != "" {
		fmt.Fprintf(w, "        %s\n", r.NewStyle().Foreground(mutedColor).Render(hint))
	}
}

func errorHint(err error) string {
	switch ExitCode(err) {
	case ExitNetworkError:
		return "Is Ollama running? Start it with: ollama serve"
	case ExitNotFoundError:
		return "List installed models with: keeper status"
	case ExitTimeoutError:
		return "The runtime did not answer in time; raise ollama.keep_alive_timeout_secs for large models"
	case ExitConfigError:
		return "Check the config file with: keeper config path"
	}
	return ""
}
