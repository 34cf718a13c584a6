package tool

import "testing"

func TestName(t *testing.T) {
	name := NewName("aws/s3", "listBuckets")
	if got := name.String(); got != "aws_s3-listBuckets" {
		t.Fatalf("String() = %q", got)
	}
	if got := name.Service(); got != "aws/s3" {
		t.Fatalf("Service() = %q", got)
	}
	if got := name.Method(); got != "listBuckets" {
		t.Fatalf("Method() = %q", got)
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"aws_s3-listBuckets", "aws_s3-listBuckets"},
		{"aws/s3.listBuckets", "aws_s3-listBuckets"},
		{"aws/s3-listBuckets", "aws_s3-listBuckets"},
		{"aws/s3/listBuckets", "aws_s3-listBuckets"},
	}

	for i, tc := range cases {
		if got := Canonical(tc.in); got != tc.out {
			t.Fatalf("case %d: Canonical(%q) = %q, want %q", i, tc.in, got, tc.out)
		}
	}
}
