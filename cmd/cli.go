package cmd

import (
	"errors"

	"grimm.is/conform/internal/i18n"
)

// Printer renders all user-facing CLI text.
var Printer = i18n.NewCLIPrinter()

// ErrUsage is returned for bad command lines.
var ErrUsage = errors.New("usage")

// Exit statuses shared by every command.
const (
	ExitPass  = 0
	ExitFail  = 1
	ExitError = 2
)
