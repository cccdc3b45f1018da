package lint

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
)

const (
	docsFrontmatterRuleName = "docs-frontmatter"
	blogFrontmatterRuleName = "blog-frontmatter"
)

// readFrontmatter loads the frontmatter fields of a file. A split or parse
// failure is returned as an issue rather than an error.
func readFrontmatter(filePath, rule string) (map[string]any, *Issue, error) {
	//nolint:gosec // G304: Reading file by path is expected for a linter
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := frontmatter.Split(data)
	if err == nil {
		var fields map[string]any
		if fields, err = doc.Fields(); err == nil {
			return fields, nil, nil
		}
	}
	return nil, &Issue{
		FilePath: filePath,
		Severity: SeverityError,
		Rule:     rule,
		Message:  fmt.Sprintf("Invalid frontmatter: %v", err),
		Fix:      "Fix the YAML between the --- delimiters",
	}, nil
}

func newIssue(filePath, rule, msg string) Issue {
	return Issue{FilePath: filePath, Severity: SeverityError, Rule: rule, Message: msg}
}

func newWarning(filePath, rule, msg, fix string) Issue {
	return Issue{FilePath: filePath, Severity: SeverityWarning, Rule: rule, Message: msg, Fix: fix}
}

// DocsFrontmatterRule requires a string title and a numeric weight.
type DocsFrontmatterRule struct{}

func (r *DocsFrontmatterRule) Name() string { return docsFrontmatterRuleName }

func (r *DocsFrontmatterRule) Check(filePath string) ([]Issue, error) {
	fm, bad, err := readFrontmatter(filePath, r.Name())
	if err != nil || bad != nil {
		return issueList(bad), err
	}
	return validateDocs(filePath, fm), nil
}

func validateDocs(filePath string, fm map[string]any) []Issue {
	var issues []Issue
	if title, ok := fm["title"].(string); !ok || title == "" {
		issues = append(issues, newIssue(filePath, docsFrontmatterRuleName, "Title is missing or not a string"))
	} else if strings.TrimSpace(title) != title {
		issues = append(issues, newWarning(filePath, docsFrontmatterRuleName,
			"Title has leading or trailing whitespace", "Trim the title; it is used as the navigation label"))
	}
	if !isNumber(fm["weight"]) {
		issues = append(issues, newIssue(filePath, docsFrontmatterRuleName, "Weight is missing or not a number"))
	}
	return issues
}

// BlogFrontmatterRule requires the fields a blog post card is rendered from.
type BlogFrontmatterRule struct{}

func (r *BlogFrontmatterRule) Name() string { return blogFrontmatterRuleName }

func (r *BlogFrontmatterRule) Check(filePath string) ([]Issue, error) {
	fm, bad, err := readFrontmatter(filePath, r.Name())
	if err != nil || bad != nil {
		return issueList(bad), err
	}
	return validateBlog(filePath, fm), nil
}

var blogRequired = []string{"title", "date", "type", "tags", "cover", "authors"}

func validateBlog(filePath string, fm map[string]any) []Issue {
	var issues []Issue
	add := func(format string, args ...any) {
		issues = append(issues, newIssue(filePath, blogFrontmatterRuleName, fmt.Sprintf(format, args...)))
	}

	for _, attr := range blogRequired {
		if _, ok := fm[attr]; !ok {
			add("%s is missing", attr)
		}
	}

	if date, ok := fm["date"]; ok && truthy(date) && !isDate(date) {
		add("Invalid date format: %v", date)
	}
	if tags, ok := fm["tags"]; ok && truthy(tags) {
		list, isList := tags.([]any)
		switch {
		case !isList:
			add("Tags should be an array")
		case len(list) == 0:
			issues = append(issues, newWarning(filePath, blogFrontmatterRuleName,
				"Tags list is empty", "Add at least one tag so the post can be filtered"))
		}
	}
	if cover, ok := fm["cover"]; ok && truthy(cover) {
		if _, isString := cover.(string); !isString {
			add("Cover must be a string")
		}
	}
	if authors, ok := fm["authors"]; ok && truthy(authors) {
		list, isList := authors.([]any)
		switch {
		case !isList:
			add("Authors should be an array")
		case len(list) == 0:
			issues = append(issues, newWarning(filePath, blogFrontmatterRuleName,
				"Authors list is empty", "List the post authors with a name and photo"))
		}
		for i, a := range list {
			author, _ := a.(map[string]any)
			if !truthy(author["name"]) {
				add("Author at index %d is missing a name", i)
			}
			if link, ok := author["link"]; ok && truthy(link) && !isValidURL(fmt.Sprint(link)) {
				add("Invalid URL for author at index %d: %v", i, link)
			}
			if !truthy(author["photo"]) {
				add("Author at index %d is missing a photo", i)
			}
		}
	}
	return issues
}

func issueList(issue *Issue) []Issue {
	if issue == nil {
		return nil
	}
	return []Issue{*issue}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

// truthy reports whether v is set to something other than a zero scalar.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04",
	"2006/01/02",
	time.RFC1123,
	time.RFC1123Z,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

func isDate(v any) bool {
	switch val := v.(type) {
	case time.Time:
		return true
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isValidURL accepts absolute URLs with a scheme.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return u.Host != ""
	}
	return true
}
