package rod

import (
	"context"
	"strings"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure SnippetExtractor implements doccrawler.SnippetExtractor at
// compile time.
var _ doccrawler.SnippetExtractor = (*SnippetExtractor)(nil)

// selectorHierarchy lists language-switcher selectors from most to least
// specific. The first selector that matches anything on the page wins.
var selectorHierarchy = []string{
	"select",
	`[role="tab"]`,
	`button[class*="tab"]`,
	`li[class*="tab"]`,
	".tabs button",
}

// languageNames maps switcher labels to canonical snippet languages.
var languageNames = map[string]string{
	"python": "python", "py": "python",
	"javascript": "javascript", "js": "javascript",
	"node": "javascript", "node.js": "javascript", "nodejs": "javascript",
	"typescript": "typescript", "ts": "typescript",
	"java": "java",
	"go":   "go", "golang": "go",
	"ruby": "ruby", "rb": "ruby",
	"php":  "php",
	"c#":   "csharp", "csharp": "csharp", ".net": "csharp",
	"curl": "curl", "shell": "shell", "bash": "shell", "terminal": "shell",
	"rust": "rust", "swift": "swift", "kotlin": "kotlin",
	"c": "c", "c++": "cpp", "cpp": "cpp",
	"scala": "scala", "dart": "dart", "http": "http",
}

// canonicalLanguage returns the snippet language for a switcher label,
// or "" when the label is not a programming language.
func canonicalLanguage(label string) string {
	return languageNames[strings.ToLower(strings.TrimSpace(label))]
}

// classLanguage derives a language from a code element's class attribute,
// following the highlight.js "language-*" convention. Unrecognized
// suffixes pass through as-is.
func classLanguage(class string) string {
	for _, token := range strings.Fields(class) {
		suffix, ok := strings.CutPrefix(token, "language-")
		if !ok {
			continue
		}
		if lang := canonicalLanguage(suffix); lang != "" {
			return lang
		}
		return strings.ToLower(suffix)
	}
	return ""
}

// SnippetExtractor drives language switchers on documentation pages and
// captures the code each switch reveals. It shares the browser with the
// rendering Fetcher. Safe for concurrent use; every page runs in its own
// browser tab.
type SnippetExtractor struct {
	manager *BrowserManager

	// Settle is how long to wait after an interaction for the page to
	// re-render; defaults to 500ms.
	Settle time.Duration
}

const defaultSettle = 500 * time.Millisecond

// NewSnippetExtractor creates a SnippetExtractor on a shared
// BrowserManager. The caller owns the manager's lifecycle.
func NewSnippetExtractor(manager *BrowserManager) *SnippetExtractor {
	return &SnippetExtractor{manager: manager}
}

// ExtractHidden navigates to the URL, activates every language option it
// can find, and returns only the code revealed by those interactions,
// keyed by language. Code already present before any interaction is
// excluded. Per-element failures are skipped.
func (se *SnippetExtractor) ExtractHidden(ctx context.Context, url string) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser := se.manager.Browser()
	if browser == nil {
		return nil, doccrawler.Errorf(doccrawler.EINTERNAL, "browser manager is closed")
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	se.settle(ctx)

	// Baseline: code visible before interaction is already in the
	// extracted content and must not be reported again.
	seen := make(map[string]struct{})
	for _, block := range se.codeBlocks(page) {
		seen[block.text] = struct{}{}
	}

	snippets := make(map[string][]string)
	harvest := func(switcherLang string) {
		for _, block := range se.codeBlocks(page) {
			if _, dup := seen[block.text]; dup {
				continue
			}
			seen[block.text] = struct{}{}
			// A language-* class on the revealed block outranks the
			// switcher label.
			lang := block.lang
			if lang == "" {
				lang = switcherLang
			}
			snippets[lang] = append(snippets[lang], block.text)
		}
	}

	for _, selector := range selectorHierarchy {
		elements, err := page.Elements(selector)
		if err != nil || len(elements) == 0 {
			continue
		}
		if selector == "select" {
			se.driveSelects(ctx, elements, harvest)
		} else {
			se.driveTabs(ctx, elements, harvest)
		}
		break
	}

	se.manager.IncrementPageCount()
	return snippets, nil
}

// driveSelects walks dropdown language switchers, selecting each option
// whose label names a programming language.
func (se *SnippetExtractor) driveSelects(ctx context.Context, selects rod.Elements, harvest func(lang string)) {
	for _, sel := range selects {
		options, err := sel.Elements("option")
		if err != nil {
			continue
		}
		for _, option := range options {
			if ctx.Err() != nil {
				return
			}
			label, err := option.Text()
			if err != nil {
				continue
			}
			lang := canonicalLanguage(label)
			if lang == "" {
				continue
			}
			if err := sel.Select([]string{strings.TrimSpace(label)}, true, rod.SelectorTypeText); err != nil {
				continue
			}
			se.settle(ctx)
			harvest(lang)
		}
	}
}

// driveTabs clicks tab-style language switchers one at a time; the page
// re-renders between clicks, so concurrent clicking would race the DOM.
func (se *SnippetExtractor) driveTabs(ctx context.Context, tabs rod.Elements, harvest func(lang string)) {
	for _, tab := range tabs {
		if ctx.Err() != nil {
			return
		}
		if visible, err := tab.Visible(); err != nil || !visible {
			continue
		}
		label, err := tab.Text()
		if err != nil {
			continue
		}
		lang := canonicalLanguage(label)
		if lang == "" {
			continue
		}
		if err := tab.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		se.settle(ctx)
		harvest(lang)
	}
}

// codeBlock is one code element's text plus the language its class
// attribute declares, if any.
type codeBlock struct {
	text string
	lang string
}

// codeBlocks returns every code element on the page. Nested matches
// dedupe by text, favoring the outermost block.
func (se *SnippetExtractor) codeBlocks(page *rod.Page) []codeBlock {
	elements, err := page.Elements("pre code, pre, code")
	if err != nil {
		return nil
	}
	var blocks []codeBlock
	unique := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, dup := unique[text]; dup {
			continue
		}
		unique[text] = struct{}{}
		var lang string
		if class, err := el.Attribute("class"); err == nil && class != nil {
			lang = classLanguage(*class)
		}
		blocks = append(blocks, codeBlock{text: text, lang: lang})
	}
	return blocks
}

func (se *SnippetExtractor) settle(ctx context.Context) {
	settle := se.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	select {
	case <-ctx.Done():
	case <-time.After(settle):
	}
}

// Close releases browser resources.
func (se *SnippetExtractor) Close() error {
	return se.manager.Close()
}
