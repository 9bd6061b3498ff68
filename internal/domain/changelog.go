package domain

import "strings"

// DefaultChangelogTemplate renders one commit block of a synthesized tag message.
const DefaultChangelogTemplate = "**1) {{message}}** {{author}}\n(SHA: {{sha}})\n"

// changelogToken maps a placeholder to the commit value it is replaced with.
type changelogToken struct {
	placeholder string
	resolve     func(Commit) string
}

var changelogTokens = []changelogToken{
	{placeholder: "{{message}}", resolve: func(c Commit) string { return c.Message }},
	{placeholder: "{{messageHeadline}}", resolve: Commit.Headline},
	{placeholder: "{{author}}", resolve: func(c Commit) string { return c.AuthorLogin }},
	{placeholder: "{{sha}}", resolve: func(c Commit) string { return c.SHA }},
}

// RenderCommit substitutes every recognized placeholder in tmpl with values
// from commit. Unrecognized "{{...}}" sequences are copied through unchanged
// and substituted values are never rescanned.
func RenderCommit(tmpl string, commit Commit) string {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		if strings.HasPrefix(tmpl[i:], "{{") {
			if tok, ok := matchToken(tmpl[i:]); ok {
				b.WriteString(tok.resolve(commit))
				i += len(tok.placeholder)
				continue
			}
		}
		b.WriteByte(tmpl[i])
		i++
	}
	return b.String()
}

func matchToken(s string) (changelogToken, bool) {
	for _, tok := range changelogTokens {
		if strings.HasPrefix(s, tok.placeholder) {
			return tok, true
		}
	}
	return changelogToken{}, false
}

// RenderChangelog renders every commit through tmpl and joins the blocks with
// newlines. An empty tmpl selects DefaultChangelogTemplate.
func RenderChangelog(tmpl string, commits []Commit) string {
	if tmpl == "" {
		tmpl = DefaultChangelogTemplate
	}
	blocks := make([]string, 0, len(commits))
	for _, c := range commits {
		blocks = append(blocks, RenderCommit(tmpl, c))
	}
	return strings.Join(blocks, "\n")
}
