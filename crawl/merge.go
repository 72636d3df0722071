package crawl

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var fencedBlockRE = regexp.MustCompile("(?s)```([A-Za-z0-9+#._-]*)\n(.*?)```")

// MergeSnippets folds recovered code snippets into a markdown document.
// Existing fenced blocks are preserved verbatim. Each recovered snippet
// is inserted as a new fenced block directly after the last existing
// block of the same language; languages with no existing block are
// appended under an "Additional Code Snippets" section. Snippets already
// present in the document are skipped, so merging the same set twice
// yields the same output.
func MergeSnippets(markdown string, snippets map[string][]string) string {
	if len(snippets) == 0 {
		return markdown
	}

	// Index the last fenced block per language in the original document.
	matches := fencedBlockRE.FindAllStringSubmatchIndex(markdown, -1)
	lastBlockEnd := make(map[string]int)
	for _, m := range matches {
		lang := strings.ToLower(markdown[m[2]:m[3]])
		if lang == "" {
			continue
		}
		lastBlockEnd[lang] = m[1]
	}

	type insertion struct {
		offset int
		text   string
	}
	var insertions []insertion
	var leftovers []string

	langs := make([]string, 0, len(snippets))
	for lang := range snippets {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		for _, snippet := range snippets[lang] {
			snippet = strings.TrimSpace(snippet)
			if snippet == "" || strings.Contains(markdown, snippet) {
				continue
			}
			block := fmt.Sprintf("\n\n```%s\n%s\n```", normalized, snippet)
			if end, ok := lastBlockEnd[normalized]; ok {
				insertions = append(insertions, insertion{offset: end, text: block})
			} else {
				leftovers = append(leftovers, block)
			}
		}
	}

	if len(insertions) == 0 && len(leftovers) == 0 {
		return markdown
	}

	// Apply insertions back to front so earlier offsets stay valid.
	sort.SliceStable(insertions, func(i, j int) bool {
		return insertions[i].offset > insertions[j].offset
	})
	var b strings.Builder
	merged := markdown
	for _, ins := range insertions {
		b.Reset()
		b.WriteString(merged[:ins.offset])
		b.WriteString(ins.text)
		b.WriteString(merged[ins.offset:])
		merged = b.String()
	}

	if len(leftovers) > 0 {
		merged = strings.TrimRight(merged, "\n") + "\n\n# Additional Code Snippets\n"
		for _, block := range leftovers {
			merged += block
		}
		merged += "\n"
	}
	return merged
}
