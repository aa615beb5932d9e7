package document

import (
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`^(#+)(?:[ \t]+(.*))?$`)
	fenceRe   = regexp.MustCompile("^(`{3,})(.*)$")
)

// Parse converts Markdown into a sequence of blocks. Malformed content
// never fails: an unterminated code fence runs to the end of the input,
// stray delimiters stay text and irregular list indentation is folded
// into a valid nesting. An empty input yields a single empty paragraph.
func Parse(markdown string) []Block {
	p := &blockParser{lines: splitLines(markdown)}
	blocks := p.parse()
	if len(blocks) == 0 {
		return emptyDocument()
	}
	return blocks
}

// MarkdownToDocument is an alias of [Parse].
func MarkdownToDocument(markdown string) []Block {
	return Parse(markdown)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

type blockParser struct {
	lines []string
	pos   int
}

func (p *blockParser) parse() (result []Block) {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			p.pos++
		case headingRe.MatchString(trimmed):
			result = append(result, p.parseHeading(trimmed))
		case fenceRe.MatchString(trimmed):
			result = append(result, p.parseCodeBlock(trimmed))
		case strings.HasPrefix(trimmed, ">"):
			result = append(result, p.parseBlockquote())
		case isListItem(line):
			list, next := parseList(p.lines, p.pos)
			result = append(result, list)
			p.pos = next
		default:
			result = append(result, p.parseParagraph())
		}
	}
	return result
}

// isSpecial reports whether a line starts a construct other than a paragraph.
func isSpecial(line string) bool {
	trimmed := strings.TrimSpace(line)
	return headingRe.MatchString(trimmed) ||
		fenceRe.MatchString(trimmed) ||
		strings.HasPrefix(trimmed, ">") ||
		isListItem(line)
}

func (p *blockParser) parseHeading(trimmed string) Block {
	m := headingRe.FindStringSubmatch(trimmed)
	p.pos++
	return NewHeading(len(m[1]), ParseInline(strings.TrimSpace(m[2]))...)
}

func (p *blockParser) parseCodeBlock(trimmed string) Block {
	m := fenceRe.FindStringSubmatch(trimmed)
	fence, language := m[1], strings.TrimSpace(m[2])

	start := p.pos + 1
	end := start
	for end < len(p.lines) && !isClosingFence(p.lines[end], fence) {
		end++
	}

	block := &CodeBlock{
		Language: language,
		Text:     strings.Join(p.lines[start:end], "\n"),
	}

	// Skip the closing fence unless the input ended first.
	p.pos = min(end+1, len(p.lines))
	return block
}

func isClosingFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= len(fence) && strings.Trim(trimmed, "`") == ""
}

func (p *blockParser) parseBlockquote() Block {
	var quoted []string
	for p.pos < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[p.pos])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		quoted = append(quoted, strings.TrimPrefix(trimmed[1:], " "))
		p.pos++
	}
	return &Blockquote{Inline: ParseInline(strings.Join(quoted, "\n"))}
}

func (p *blockParser) parseParagraph() Block {
	var text []string
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if isBlank(line) || (len(text) > 0 && isSpecial(line)) {
			break
		}
		text = append(text, strings.TrimSpace(line))
		p.pos++
	}
	return &Paragraph{Inline: ParseInline(strings.Join(text, "\n"))}
}
