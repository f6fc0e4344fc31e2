package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
)

var queryCmd = &cobra.Command{
	Use:   "query [search terms...]",
	Short: "Search reviews",
	Long: `Run a Gerrit query and print the matching reviews. Search terms are
passed through as-is; the --project, --branch, and --status flags are
shorthands for the corresponding operators.

Examples:
  gersh -s review.example.com query status:open owner:self
  gersh -s review.example.com query --project tools/gersh --status merged -n 20
  gersh -s review.example.com query --format json topic:rollout`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringP("project", "p", "", "restrict to a project")
	queryCmd.Flags().StringP("branch", "b", "", "restrict to a branch")
	queryCmd.Flags().String("status", "", "restrict to a status (open, merged, abandoned)")
	queryCmd.Flags().IntP("max-results", "n", 0, "stop after this many results (0 = all)")
	queryCmd.Flags().StringP("options", "o", "", "extra query options, e.g. \"--comments\"")
	queryCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

// buildQueryExpr combines the shorthand flags with free-form terms.
func buildQueryExpr(cmd *cobra.Command, args []string) string {
	var terms []string

	appendOp := func(name, flag string) {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			terms = append(terms, name+":"+v)
		}
	}
	appendOp("project", "project")
	appendOp("branch", "branch")
	appendOp("status", "status")

	terms = append(terms, args...)
	return strings.Join(terms, " ")
}

func runQuery(cmd *cobra.Command, args []string) error {
	expr := buildQueryExpr(cmd, args)
	if expr == "" {
		return fmt.Errorf("empty query (give search terms or --project/--branch/--status)")
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	optionStr, _ := cmd.Flags().GetString("options")

	q, err := gerrit.NewQueryWithOptions(expr, maxResults, optionStr)
	if err != nil {
		return err
	}

	site, closeSite, err := connectSite(cmd)
	if err != nil {
		return err
	}
	defer closeSite()

	reviews, err := q.ExecuteOn(site)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return printReviewsJSON(reviews)
	case "text":
		printReviewsText(reviews)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}
}

// printReviewsText groups reviews by project, ordered by project then ref.
func printReviewsText(reviews []*gerrit.Review) {
	if len(reviews) == 0 {
		fmt.Println("No matching reviews.")
		return
	}

	sorted := make([]*gerrit.Review, len(reviews))
	copy(sorted, reviews)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Project != sorted[j].Project {
			return sorted[i].Project < sorted[j].Project
		}
		return sorted[i].Ref() < sorted[j].Ref()
	})

	lastProject := ""
	for _, r := range sorted {
		if r.Project != lastProject {
			fmt.Printf("\n%s:\n", r.Project)
			lastProject = r.Project
		}
		fmt.Printf("\t(%s)\t%s\n", r.Ref(), r.Subject)
	}
}

type jsonPatchset struct {
	Number   int    `json:"number"`
	Revision string `json:"revision"`
	Ref      string `json:"ref"`
	Author   string `json:"author"`
}

type jsonReview struct {
	Project   string         `json:"project"`
	Branch    string         `json:"branch"`
	Number    int            `json:"number"`
	Subject   string         `json:"subject"`
	Status    string         `json:"status"`
	Author    string         `json:"author"`
	URL       string         `json:"url,omitempty"`
	Ref       string         `json:"ref,omitempty"`
	SHA1      string         `json:"sha1,omitempty"`
	Patchsets []jsonPatchset `json:"patchsets,omitempty"`
}

func printReviewsJSON(reviews []*gerrit.Review) error {
	out := make([]jsonReview, 0, len(reviews))
	for _, r := range reviews {
		jr := jsonReview{
			Project: r.Project,
			Branch:  r.Branch,
			Number:  r.Number,
			Subject: r.Subject,
			Status:  r.Status,
			Author:  r.Author(),
			URL:     r.URL,
			Ref:     r.Ref(),
			SHA1:    r.SHA1(),
		}
		nums := make([]int, 0, len(r.Patchsets()))
		for n := range r.Patchsets() {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			ps := r.Patchsets()[n]
			jr.Patchsets = append(jr.Patchsets, jsonPatchset{
				Number:   ps.Number,
				Revision: ps.Revision,
				Ref:      ps.Ref,
				Author:   ps.Author(),
			})
		}
		out = append(out, jr)
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return printJSON(string(buf))
}
