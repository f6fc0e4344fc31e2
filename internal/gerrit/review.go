package gerrit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Account identifies a Gerrit user as it appears in review JSON.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Display prefers the human name and falls back to the username.
func (a Account) Display() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}

// flexInt tolerates Gerrit emitting numeric fields as either JSON numbers
// or strings; older servers quote patchset and change numbers.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) > 1 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = flexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}

type patchsetJSON struct {
	Number    flexInt `json:"number"`
	Revision  string  `json:"revision"`
	Ref       string  `json:"ref"`
	Uploader  Account `json:"uploader"`
	CreatedOn int64   `json:"createdOn"`
	IsDraft   bool    `json:"isDraft"`
}

type reviewJSON struct {
	Type          string          `json:"type"` // set on the trailing stats record
	Project       string          `json:"project"`
	Branch        string          `json:"branch"`
	Topic         string          `json:"topic"`
	ID            string          `json:"id"`
	Number        flexInt         `json:"number"`
	Subject       string          `json:"subject"`
	Owner         Account         `json:"owner"`
	URL           string          `json:"url"`
	CommitMessage string          `json:"commitMessage"`
	CreatedOn     int64           `json:"createdOn"`
	LastUpdated   int64           `json:"lastUpdated"`
	SortKey       string          `json:"sortKey"`
	Open          bool            `json:"open"`
	Status        string          `json:"status"`
	CurrentPS     *patchsetJSON   `json:"currentPatchSet"`
	PatchSets     []patchsetJSON  `json:"patchSets"`
}

// Patchset is one uploaded revision of a review. A Patchset belongs to
// exactly one Review; the back-reference exists for accessor convenience
// only.
type Patchset struct {
	Number    int
	Revision  string
	Ref       string
	Uploader  Account
	CreatedOn time.Time
	IsDraft   bool

	review *Review
}

// Review returns the owning review.
func (p *Patchset) Review() *Review { return p.review }

// Author is the uploader's display name.
func (p *Patchset) Author() string { return p.Uploader.Display() }

// Review is one code review decoded from a query response line, with its
// patchsets keyed by number. Reviews are built once per line and not
// mutated afterwards.
type Review struct {
	Project       string
	Branch        string
	Topic         string
	ID            string
	Number        int
	Subject       string
	Owner         Account
	URL           string
	CommitMessage string
	CreatedOn     time.Time
	LastUpdated   time.Time
	SortKey       string
	Status        string

	patchsets map[int]*Patchset
	highest   int
}

// DecodeReview parses one JSON response line into a Review. A line that is
// not JSON, or that lacks the sortKey needed to resume pagination, fails
// with a *DecodeError.
func DecodeReview(line string) (*Review, error) {
	var raw reviewJSON
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}
	if raw.SortKey == "" {
		return nil, &DecodeError{Line: line, Err: fmt.Errorf("record has no sortKey")}
	}

	r := &Review{
		Project:       raw.Project,
		Branch:        raw.Branch,
		Topic:         raw.Topic,
		ID:            raw.ID,
		Number:        int(raw.Number),
		Subject:       raw.Subject,
		Owner:         raw.Owner,
		URL:           raw.URL,
		CommitMessage: raw.CommitMessage,
		CreatedOn:     time.Unix(raw.CreatedOn, 0),
		LastUpdated:   time.Unix(raw.LastUpdated, 0),
		SortKey:       raw.SortKey,
		Status:        raw.Status,
		patchsets:     make(map[int]*Patchset),
	}

	for i := range raw.PatchSets {
		r.addPatchset(&raw.PatchSets[i])
	}
	// The currentPatchSet entry often carries more detail than its
	// counterpart in patchSets, so it wins.
	if raw.CurrentPS != nil {
		r.addPatchset(raw.CurrentPS)
	}

	return r, nil
}

func (r *Review) addPatchset(raw *patchsetJSON) {
	ps := &Patchset{
		Number:    int(raw.Number),
		Revision:  raw.Revision,
		Ref:       raw.Ref,
		Uploader:  raw.Uploader,
		CreatedOn: time.Unix(raw.CreatedOn, 0),
		IsDraft:   raw.IsDraft,
		review:    r,
	}
	r.patchsets[ps.Number] = ps
	if ps.Number > r.highest {
		r.highest = ps.Number
	}
}

// Patchsets returns the review's patchsets keyed by number.
func (r *Review) Patchsets() map[int]*Patchset { return r.patchsets }

// HighestPatchsetNumber is the largest patchset number seen, 0 when the
// response carried no patchset detail.
func (r *Review) HighestPatchsetNumber() int { return r.highest }

// HighestPatchset returns the latest patchset, or nil if none were decoded.
func (r *Review) HighestPatchset() *Patchset {
	return r.patchsets[r.highest]
}

// Ref is the fetch ref of the latest patchset (refs/changes/...).
func (r *Review) Ref() string {
	if ps := r.HighestPatchset(); ps != nil {
		return ps.Ref
	}
	return ""
}

// SHA1 is the revision of the latest patchset.
func (r *Review) SHA1() string {
	if ps := r.HighestPatchset(); ps != nil {
		return ps.Revision
	}
	return ""
}

// Author is the review owner's display name.
func (r *Review) Author() string { return r.Owner.Display() }

// Merged reports whether the change has been merged.
func (r *Review) Merged() bool { return r.Status == "MERGED" }

// Age is the time between creation and last update.
func (r *Review) Age() time.Duration {
	if r.LastUpdated.After(r.CreatedOn) {
		return r.LastUpdated.Sub(r.CreatedOn)
	}
	return 0
}
