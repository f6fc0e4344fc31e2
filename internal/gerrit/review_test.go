package gerrit

import (
	"errors"
	"testing"
	"time"
)

const reviewFixture = `{
  "project": "tools/gersh",
  "branch": "master",
  "id": "I5b2e3f",
  "number": "42",
  "subject": "Fix option parser",
  "owner": {"name": "Ann Example", "email": "ann@example.com", "username": "ann"},
  "url": "https://review.example.com/42",
  "commitMessage": "Fix option parser\n\nLong form.",
  "createdOn": 1600000000,
  "lastUpdated": 1600003600,
  "sortKey": "002e4b8c0000002a",
  "status": "MERGED",
  "patchSets": [
    {"number": "1", "revision": "cafebabe", "ref": "refs/changes/42/42/1",
     "uploader": {"username": "ann"}, "createdOn": 1600000000},
    {"number": "2", "revision": "deadbeef", "ref": "refs/changes/42/42/2",
     "uploader": {"username": "ann"}, "createdOn": 1600001000}
  ],
  "currentPatchSet":
    {"number": "2", "revision": "deadbeef", "ref": "refs/changes/42/42/2",
     "uploader": {"name": "Ann Example", "username": "ann"}, "createdOn": 1600001000}
}`

func TestDecodeReview(t *testing.T) {
	r, err := DecodeReview(reviewFixture)
	if err != nil {
		t.Fatalf("DecodeReview: %v", err)
	}

	if r.Project != "tools/gersh" || r.Number != 42 {
		t.Errorf("project/number = %q/%d", r.Project, r.Number)
	}
	if r.SortKey != "002e4b8c0000002a" {
		t.Errorf("SortKey = %q", r.SortKey)
	}
	if !r.Merged() {
		t.Error("status MERGED should report Merged")
	}
	if r.Author() != "Ann Example" {
		t.Errorf("Author = %q", r.Author())
	}

	if len(r.Patchsets()) != 2 {
		t.Fatalf("patchsets = %d, want 2", len(r.Patchsets()))
	}
	if r.HighestPatchsetNumber() != 2 {
		t.Errorf("HighestPatchsetNumber = %d", r.HighestPatchsetNumber())
	}
	ps := r.HighestPatchset()
	if ps == nil || ps.Revision != "deadbeef" {
		t.Fatalf("HighestPatchset = %+v", ps)
	}
	// currentPatchSet detail wins over the patchSets entry.
	if ps.Uploader.Name != "Ann Example" {
		t.Errorf("uploader name = %q", ps.Uploader.Name)
	}
	if ps.Review() != r {
		t.Error("patchset should point back to its review")
	}

	if r.Ref() != "refs/changes/42/42/2" {
		t.Errorf("Ref = %q", r.Ref())
	}
	if r.SHA1() != "deadbeef" {
		t.Errorf("SHA1 = %q", r.SHA1())
	}
	if got, want := r.Age(), time.Hour; got != want {
		t.Errorf("Age = %v, want %v", got, want)
	}
}

func TestDecodeReviewErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"not json", "this is not json"},
		{"missing sortKey", `{"project":"p","number":1,"subject":"s"}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeReview(c.line)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

func TestDecodeReviewNoPatchsets(t *testing.T) {
	r, err := DecodeReview(`{"project":"p","number":7,"sortKey":"001","status":"NEW"}`)
	if err != nil {
		t.Fatalf("DecodeReview: %v", err)
	}
	if r.HighestPatchset() != nil {
		t.Error("expected nil highest patchset")
	}
	if r.Ref() != "" || r.SHA1() != "" {
		t.Error("Ref/SHA1 should be empty without patchsets")
	}
	if r.Merged() {
		t.Error("NEW is not merged")
	}
}

func TestAccountDisplay(t *testing.T) {
	if (Account{Name: "Ann", Username: "ann"}).Display() != "Ann" {
		t.Error("Display should prefer the name")
	}
	if (Account{Username: "ann"}).Display() != "ann" {
		t.Error("Display should fall back to the username")
	}
}
