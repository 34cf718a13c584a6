package awscfg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, APIError("s3.ListBuckets", nil))
	})

	t.Run("api error is flattened", func(t *testing.T) {
		apiErr := &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "bucket does not exist"}
		err := APIError("s3.ListObjectsV2", fmt.Errorf("operation error: %w", apiErr))
		assert.EqualValues(t, "s3.ListObjectsV2 failed: NoSuchBucket: bucket does not exist", err.Error())
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := APIError("sts.GetCallerIdentity", cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "sts.GetCallerIdentity failed")
	})
}
