package awscfg

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// APIError reformats an AWS API failure as a stable, human-readable error of
// the form "<operation> failed: <code>: <message>".  Tool handlers return
// these instead of raw SDK errors so that agents receive a concise message
// rather than a wrapped transport dump.
func APIError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s failed: %s: %s", operation, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
