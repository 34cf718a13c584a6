package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		pattern string
		name    string
		expect  bool
	}{
		{"*", "aws/s3", true},
		{"", "aws/s3", false},
		{"aws/", "aws/s3", true},
		{"aws/", "aws/dynamodb", true},
		{"aws/s3", "aws/s3", true},
		{"aws/s3", "aws/sqs", false},
		{"aws/sq", "aws/sqs", true},
		{"gcp/", "aws/s3", false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expect, Match(tc.pattern, tc.name), "pattern %q name %q", tc.pattern, tc.name)
	}
}
