package document

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

type InlineKind int

const (
	TextInline InlineKind = iota + 1
	BoldInline
	ItalicInline
	StrikethroughInline
	CodeInline
	LinkInline
)

func (k InlineKind) String() string {
	switch k {
	case TextInline:
		return "Text"
	case BoldInline:
		return "Bold"
	case ItalicInline:
		return "Italic"
	case StrikethroughInline:
		return "Strikethrough"
	case CodeInline:
		return "Code"
	case LinkInline:
		return "Link"
	default:
		return "Unknown"
	}
}

// Inline is a styled run of text within a block.
//
// Text holds the literal for TextInline and CodeInline and the label
// for LinkInline. Delim remembers the emphasis marker ("**", "__", "*"
// or "_") so that a parsed span renders back to its source.
type Inline struct {
	Kind     InlineKind
	Text     string
	Href     string
	Delim    string
	Children []Inline
}

func Text(s string) Inline {
	return Inline{Kind: TextInline, Text: s}
}

func Bold(children ...Inline) Inline {
	return Inline{Kind: BoldInline, Delim: "**", Children: children}
}

func Italic(children ...Inline) Inline {
	return Inline{Kind: ItalicInline, Delim: "*", Children: children}
}

func Strikethrough(children ...Inline) Inline {
	return Inline{Kind: StrikethroughInline, Children: children}
}

func Code(s string) Inline {
	return Inline{Kind: CodeInline, Text: s}
}

func Link(label, href string) Inline {
	return Inline{Kind: LinkInline, Text: label, Href: href}
}

// WithDelim returns a copy of an emphasis span using the given marker.
func (i Inline) WithDelim(delim string) Inline {
	i.Delim = delim
	return i
}

func (i Inline) delim() string {
	if i.Delim != "" {
		return i.Delim
	}
	if i.Kind == BoldInline {
		return "**"
	}
	return "*"
}

var (
	boldRe               = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	strikeRe             = regexp.MustCompile(`~~(.+?)~~`)
	linkRe               = regexp.MustCompile(`\[([^\]\n]*)\]\(((?:[^()\n]|\([^()\n]*\))+)\)`)
	escapeRe             = regexp.MustCompile("\\\\([\\\\`*_~\\[\\]()#>+\\-.])")
	privateUseRe         = regexp.MustCompile("[\uE000-\uE005]")
	plainHrefRe          = regexp.MustCompile(`^(?:[^()\\\x60\n]|\([^()\\\x60\n]*\))*$`)
	codePlaceholderRe    = regexp.MustCompile(codeMaskOpen + "([0-9]+)" + codeMaskClose)
	linkPlaceholderRe    = regexp.MustCompile(linkMaskOpen + "([0-9]+)" + linkMaskClose)
	literalPlaceholderRe = regexp.MustCompile(literalMaskOpen + "([0-9]+)" + literalMaskClose)
)

// Code spans, links and literal characters are replaced by private-use
// markers while emphasis is resolved. Private-use characters already in
// the text are masked as literals first, so every marker is ours.
const (
	codeMaskOpen     = "\uE000"
	codeMaskClose    = "\uE001"
	linkMaskOpen     = "\uE002"
	linkMaskClose    = "\uE003"
	literalMaskOpen  = "\uE004"
	literalMaskClose = "\uE005"
)

type inlineMatch struct {
	start, end int
	span       Inline
}

type inlineRule func(s string) []inlineMatch

// inlineRules are applied in order. Text between the matches of a rule
// is handed to the next rule; the content of emphasis spans is scanned
// again from the first rule.
var inlineRules []inlineRule

func init() {
	inlineRules = []inlineRule{
		matchBold,
		matchItalic,
		matchStrikethrough,
	}
}

// ParseInline converts inline Markdown into spans. It never fails:
// delimiters without a partner stay literal text.
//
// Code spans are masked first and links second, so code is kept verbatim
// and link labels and targets are never split by emphasis, while
// emphasis may still surround both. A backslash before an ASCII
// punctuation character outside code makes it literal.
func ParseInline(text string) []Inline {
	if text == "" {
		return nil
	}
	masked, literals := maskPrivateUse(text)
	masked, codes := maskCodeSpans(masked)
	masked, literals = maskEscapes(masked, literals)
	masked, links := maskLinks(masked)
	spans := parseInlineRule(masked, 0)
	spans = restorePlaceholders(spans, linkPlaceholderRe, func(n int) (Inline, bool) {
		if n >= len(links) {
			return Inline{}, false
		}
		return links[n], true
	})
	spans = restoreCodeSpans(spans, codes)
	return normalizeInline(restoreLiterals(spans, literals))
}

func parseInlineRule(s string, rule int) []Inline {
	if s == "" {
		return nil
	}
	if rule >= len(inlineRules) {
		return []Inline{Text(s)}
	}

	matches := inlineRules[rule](s)
	if len(matches) == 0 {
		return parseInlineRule(s, rule+1)
	}

	var result []Inline
	pos := 0
	for _, m := range matches {
		result = append(result, parseInlineRule(s[pos:m.start], rule+1)...)
		result = append(result, m.span)
		pos = m.end
	}
	return append(result, parseInlineRule(s[pos:], rule+1)...)
}

func matchBold(s string) (result []inlineMatch) {
	for _, loc := range boldRe.FindAllStringSubmatchIndex(s, -1) {
		delim, content := "**", ""
		if loc[2] >= 0 {
			content = s[loc[2]:loc[3]]
		} else {
			delim, content = "__", s[loc[4]:loc[5]]
		}
		result = append(result, inlineMatch{
			start: loc[0],
			end:   loc[1],
			span:  Inline{Kind: BoldInline, Delim: delim, Children: parseInlineRule(content, 0)},
		})
	}
	return
}

// matchItalic finds single "*" or "_" pairs on one line. A delimiter
// touching another copy of itself is never used, which keeps leftover
// "**" and "__" literal.
// The leftmost opening delimiter wins and is closed by the nearest
// matching one, so in "*a _b* c_" the asterisks form the span.
func matchItalic(s string) (result []inlineMatch) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '*' && c != '_' {
			continue
		}
		if !isSingleDelim(s, i) || i+1 >= len(s) || isSpaceByte(s[i+1]) {
			continue
		}
		closing := -1
		for j := i + 2; j < len(s) && s[j] != '\n'; j++ {
			if s[j] == c && isSingleDelim(s, j) && !isSpaceByte(s[j-1]) {
				closing = j
				break
			}
		}
		if closing < 0 {
			continue
		}
		result = append(result, inlineMatch{
			start: i,
			end:   closing + 1,
			span: Inline{
				Kind:     ItalicInline,
				Delim:    string(c),
				Children: parseInlineRule(s[i+1:closing], 0),
			},
		})
		i = closing
	}
	return
}

func isSingleDelim(s string, i int) bool {
	if i > 0 && s[i-1] == s[i] {
		return false
	}
	if i+1 < len(s) && s[i+1] == s[i] {
		return false
	}
	return true
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func matchStrikethrough(s string) (result []inlineMatch) {
	for _, loc := range strikeRe.FindAllStringSubmatchIndex(s, -1) {
		result = append(result, inlineMatch{
			start: loc[0],
			end:   loc[1],
			span:  Strikethrough(parseInlineRule(s[loc[2]:loc[3]], 0)...),
		})
	}
	return
}

func maskPrivateUse(s string) (string, []string) {
	var literals []string
	masked := privateUseRe.ReplaceAllStringFunc(s, func(m string) string {
		literals = append(literals, m)
		return literalMaskOpen + strconv.Itoa(len(literals)-1) + literalMaskClose
	})
	return masked, literals
}

// maskCodeSpans replaces single-line code spans. A backtick preceded by
// an odd number of backslashes does not open a span; the content itself
// is verbatim, backslashes included.
func maskCodeSpans(s string) (string, []string) {
	var (
		b     strings.Builder
		codes []string
		pos   int
	)
	for i := 0; i < len(s); i++ {
		if s[i] != '`' || isEscaped(s, i) {
			continue
		}
		end := strings.IndexAny(s[i+1:], "`\n")
		if end <= 0 || s[i+1+end] != '`' {
			continue
		}
		codes = append(codes, s[i+1:i+1+end])
		b.WriteString(s[pos:i])
		b.WriteString(codeMaskOpen + strconv.Itoa(len(codes)-1) + codeMaskClose)
		i += end + 1
		pos = i + 1
	}
	b.WriteString(s[pos:])
	return b.String(), codes
}

func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func maskEscapes(s string, literals []string) (string, []string) {
	masked := escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		literals = append(literals, m[1:])
		return literalMaskOpen + strconv.Itoa(len(literals)-1) + literalMaskClose
	})
	return masked, literals
}

func maskLinks(s string) (string, []Inline) {
	var links []Inline
	masked := linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		links = append(links, Link(sub[1], sub[2]))
		return linkMaskOpen + strconv.Itoa(len(links)-1) + linkMaskClose
	})
	return masked, links
}

// restorePlaceholders replaces the markers matched by re in text spans
// with the spans returned by lookup. Unknown markers stay as text.
func restorePlaceholders(spans []Inline, re *regexp.Regexp, lookup func(int) (Inline, bool)) []Inline {
	var result []Inline
	for _, span := range spans {
		if span.Kind != TextInline {
			if len(span.Children) > 0 {
				span.Children = restorePlaceholders(span.Children, re, lookup)
			}
			result = append(result, span)
			continue
		}

		pos := 0
		for _, loc := range re.FindAllStringSubmatchIndex(span.Text, -1) {
			n, err := strconv.Atoi(span.Text[loc[2]:loc[3]])
			if err != nil {
				continue
			}
			restored, ok := lookup(n)
			if !ok {
				continue
			}
			result = append(result, Text(span.Text[pos:loc[0]]), restored)
			pos = loc[1]
		}
		result = append(result, Text(span.Text[pos:]))
	}
	return result
}

func restoreCodeSpans(spans []Inline, codes []string) []Inline {
	if len(codes) == 0 {
		return spans
	}

	lookup := func(n int) (Inline, bool) {
		if n >= len(codes) {
			return Inline{}, false
		}
		return Code(codes[n]), true
	}
	// Link labels and targets keep code spans as literal text.
	unmask := func(s string) string {
		return codePlaceholderRe.ReplaceAllStringFunc(s, func(m string) string {
			n, _ := strconv.Atoi(codePlaceholderRe.FindStringSubmatch(m)[1])
			code, ok := lookup(n)
			if !ok {
				return m
			}
			return "`" + code.Text + "`"
		})
	}

	spans = restorePlaceholders(spans, codePlaceholderRe, lookup)
	var fix func([]Inline)
	fix = func(spans []Inline) {
		for i := range spans {
			if spans[i].Kind == LinkInline {
				spans[i].Text = unmask(spans[i].Text)
				spans[i].Href = unmask(spans[i].Href)
			}
			fix(spans[i].Children)
		}
	}
	fix(spans)
	return spans
}

// restoreLiterals puts masked characters back into every text field,
// including code spans and link targets.
func restoreLiterals(spans []Inline, literals []string) []Inline {
	if len(literals) == 0 {
		return spans
	}
	replace := func(s string) string {
		return literalPlaceholderRe.ReplaceAllStringFunc(s, func(m string) string {
			n, _ := strconv.Atoi(literalPlaceholderRe.FindStringSubmatch(m)[1])
			if n >= len(literals) {
				return m
			}
			return literals[n]
		})
	}
	for i := range spans {
		spans[i].Text = replace(spans[i].Text)
		spans[i].Href = replace(spans[i].Href)
		spans[i].Children = restoreLiterals(spans[i].Children, literals)
	}
	return spans
}

// normalizeInline merges adjacent text spans and drops empty ones.
func normalizeInline(spans []Inline) []Inline {
	var result []Inline
	for _, span := range spans {
		if len(span.Children) > 0 {
			span.Children = normalizeInline(span.Children)
		}
		if span.Kind == TextInline {
			if span.Text == "" {
				continue
			}
			if n := len(result); n > 0 && result[n-1].Kind == TextInline {
				result[n-1].Text += span.Text
				continue
			}
		}
		result = append(result, span)
	}
	return result
}

// RenderInline converts spans back to Markdown.
func RenderInline(spans []Inline) string {
	var b strings.Builder
	writeInline(&b, spans)
	return b.String()
}

func writeInline(b *strings.Builder, spans []Inline) {
	for _, span := range spans {
		switch span.Kind {
		case TextInline:
			b.WriteString(escapeBackslashes(span.Text))
		case BoldInline, ItalicInline:
			d := span.delim()
			b.WriteString(d)
			writeInline(b, span.Children)
			b.WriteString(d)
		case StrikethroughInline:
			b.WriteString("~~")
			writeInline(b, span.Children)
			b.WriteString("~~")
		case CodeInline:
			b.WriteString("`")
			b.WriteString(span.Text)
			b.WriteString("`")
		case LinkInline:
			b.WriteString("[")
			b.WriteString(escapeLinkLabel(span.Text))
			b.WriteString("](")
			b.WriteString(escapeHref(span.Href))
			b.WriteString(")")
		}
	}
}

// escapeBackslashes doubles a backslash that would otherwise escape the
// next character, including one at the end of the text.
func escapeBackslashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && (i+1 == len(s) || isEscapable(s[i+1])) {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isEscapable(c byte) bool {
	return strings.IndexByte("\\`*_~[]()#>+-.", c) >= 0
}

func escapeLinkLabel(s string) string {
	s = escapeBackslashes(s)
	s = strings.ReplaceAll(s, "[", `\[`)
	return strings.ReplaceAll(s, "]", `\]`)
}

// escapeHref keeps targets with balanced parentheses as they are and
// escapes the rest.
func escapeHref(s string) string {
	if plainHrefRe.MatchString(s) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '(', ')', '`':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// RenderInlineHTML converts spans to the inline markup consumed by the editor.
func RenderInlineHTML(spans []Inline) string {
	var b strings.Builder
	writeInlineHTML(&b, spans)
	return b.String()
}

func writeInlineHTML(b *strings.Builder, spans []Inline) {
	wrap := func(tag string, children []Inline) {
		b.WriteString("<" + tag + ">")
		writeInlineHTML(b, children)
		b.WriteString("</" + tag + ">")
	}

	for _, span := range spans {
		switch span.Kind {
		case TextInline:
			b.WriteString(escapeText(span.Text))
		case BoldInline:
			wrap("strong", span.Children)
		case ItalicInline:
			wrap("em", span.Children)
		case StrikethroughInline:
			wrap("s", span.Children)
		case CodeInline:
			b.WriteString("<code>" + html.EscapeString(span.Text) + "</code>")
		case LinkInline:
			b.WriteString(`<a href="` + html.EscapeString(span.Href) + `">`)
			b.WriteString(escapeText(span.Text))
			b.WriteString("</a>")
		}
	}
}

func escapeText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// PlainText flattens spans into their visible text.
func PlainText(spans []Inline) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case TextInline, CodeInline, LinkInline:
			b.WriteString(span.Text)
		default:
			b.WriteString(PlainText(span.Children))
		}
	}
	return b.String()
}
