package gerrit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

const queryVerb = "query"

var queryRange = semver.MustParseRange(">=2.4")

// Options the query command accepts. current-patch-set through
// commit-message and format are forced on by the engine regardless of
// caller input because the typed record decoding depends on them.
var queryOptions = cmdopt.MustCatalog(
	cmdopt.Flag("current-patch-set", ""),
	cmdopt.Flag("patch-sets", ""),
	cmdopt.Flag("all-approvals", ""),
	cmdopt.Flag("all-reviewers", "").SupportedIn(">=2.9"),
	cmdopt.Flag("dependencies", ""),
	cmdopt.Flag("commit-message", ""),
	cmdopt.Flag("comments", ""),
	cmdopt.Flag("files", "").SupportedIn(">=2.5"),
	cmdopt.Flag("submit-records", "").SupportedIn(">=2.5"),
	cmdopt.Choice("format", "", "TEXT", "JSON"),
)

var queryForcedFlags = []string{
	"current-patch-set",
	"patch-sets",
	"all-approvals",
	"dependencies",
	"commit-message",
}

// Query drives Gerrit's paginated query protocol. Each page is one round
// trip; the response is newline-delimited JSON review records followed by
// a statistics record carrying the implicit server-side result cap. The
// engine reissues the query with a resume_sortkey cursor until the server
// has nothing left or the caller's maximum is met.
type Query struct {
	expr string
	max  int
	opts *cmdopt.Selection
}

// NewQuery prepares a query for the given search expression. maxResults
// caps the total result count across pages; 0 means unlimited.
func NewQuery(expr string, maxResults int) *Query {
	q, err := NewQueryWithOptions(expr, maxResults, "")
	if err != nil {
		// Parsing the empty option string cannot fail.
		panic(err)
	}
	return q
}

// NewQueryWithOptions additionally parses caller-supplied per-page options
// such as "--comments". The options the engine forces are applied on top
// of these at execution time.
func NewQueryWithOptions(expr string, maxResults int, optionStr string) (*Query, error) {
	sel, err := queryOptions.Parse(optionStr)
	if err != nil {
		return nil, err
	}
	if maxResults < 0 {
		maxResults = 0
	}
	return &Query{expr: expr, max: maxResults, opts: sel}, nil
}

// ExecuteOn runs the query to completion against a connected site and
// returns the decoded reviews, truncated to the requested maximum. Any
// transport or decode failure aborts the whole query; no partial results
// are returned.
func (q *Query) ExecuteOn(site *Site) ([]*Review, error) {
	for _, key := range queryForcedFlags {
		if err := q.opts.SetFlag(key, true); err != nil {
			return nil, err
		}
	}
	if err := q.opts.Set("format", "JSON"); err != nil {
		return nil, err
	}

	// Compatibility runs after forcing so forced options face the same
	// check as caller-supplied ones.
	if err := CheckSupport(queryVerb, queryRange, q.opts, site.Version()); err != nil {
		return nil, err
	}

	var (
		results []*Review
		cursor  string
	)

	for {
		page, err := q.fetchPage(site, cursor, len(results))
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			// Terminator-only page: natural end of results.
			break
		}

		results = append(results, page...)
		cursor = page[len(page)-1].SortKey

		if q.max > 0 && len(results) >= q.max {
			break
		}
	}

	// The final page may overshoot; pages do not align with the budget.
	if q.max > 0 && len(results) > q.max {
		results = results[:q.max]
	}
	return results, nil
}

// fetchPage issues one round trip and decodes its review records. The
// trailing statistics record is validated as JSON and dropped.
func (q *Query) fetchPage(site *Site, cursor string, got int) ([]*Review, error) {
	lines, err := site.Execute(q.pageCommand(cursor, got))
	if err != nil {
		return nil, err
	}

	lines = nonEmpty(lines)
	if len(lines) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("query response carried no terminator record")}
	}

	last := lines[len(lines)-1]
	if !json.Valid([]byte(last)) {
		return nil, &DecodeError{Line: last, Err: fmt.Errorf("terminator record is not JSON")}
	}

	page := make([]*Review, 0, len(lines)-1)
	for _, l := range lines[:len(lines)-1] {
		r, err := DecodeReview(l)
		if err != nil {
			return nil, err
		}
		page = append(page, r)
	}
	return page, nil
}

// pageCommand renders one page request: the verb, a limit term holding the
// remaining budget when a maximum was requested, the caller's expression,
// the option fragment, and the resume cursor once one exists.
func (q *Query) pageCommand(cursor string, got int) string {
	limit := ""
	if q.max > 0 {
		limit = "limit:" + strconv.Itoa(q.max-got)
	}
	resume := ""
	if cursor != "" {
		resume = "resume_sortkey:" + cursor
	}
	return joinTerms(queryVerb, limit, q.expr, q.opts.Render(), resume)
}

// RunQuery performs a complete paginated query against a connected site.
func RunQuery(site *Site, expr string, maxResults int) ([]*Review, error) {
	return NewQuery(expr, maxResults).ExecuteOn(site)
}

func queryTerm(name, value string) string {
	if value == "" {
		return ""
	}
	return name + ":" + value
}

func reviewsByStatus(project, branch, status string, maxResults int) *Query {
	expr := joinTerms(
		queryTerm("project", project),
		queryTerm("branch", branch),
		queryTerm("status", status),
	)
	return NewQuery(expr, maxResults)
}

// OpenReviews prepares a query for all open reviews, optionally restricted
// to a project and branch.
func OpenReviews(project, branch string, maxResults int) *Query {
	return reviewsByStatus(project, branch, "open", maxResults)
}

// MergedReviews prepares a query for merged reviews.
func MergedReviews(project, branch string, maxResults int) *Query {
	return reviewsByStatus(project, branch, "merged", maxResults)
}

// AbandonedReviews prepares a query for abandoned reviews.
func AbandonedReviews(project, branch string, maxResults int) *Query {
	return reviewsByStatus(project, branch, "abandoned", maxResults)
}
