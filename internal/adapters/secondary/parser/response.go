package parser

import (
	"strings"

	"github.com/fredcamaral/docdeck/internal/domain/entities"
)

const (
	// UntitledSlideTitle names the slide opened for bullets that appear
	// before any heading
	UntitledSlideTitle = "Untitled Slide"

	// SummarySlideTitle names the placeholder slide used when nothing in
	// the generated text could be parsed
	SummarySlideTitle = "Presentation Summary"

	summaryExcerptRunes = 100
)

var summaryIntro = []string{
	"The generated content did not contain recognizable slide structure.",
	"An excerpt of the generated text is shown below.",
}

// Option configures a Parser
type Option func(*Parser)

// WithOrphanBullets sets what happens to bullets before the first heading
func WithOrphanBullets(policy entities.OrphanBulletPolicy) Option {
	return func(p *Parser) {
		if policy != "" {
			p.orphanBullets = policy
		}
	}
}

// Parser turns generated text into slides. It is stateless and safe for
// concurrent use.
type Parser struct {
	orphanBullets entities.OrphanBulletPolicy
}

// NewParser creates a parser. Orphan bullets open an untitled slide unless
// configured otherwise.
func NewParser(opts ...Option) *Parser {
	p := &Parser{orphanBullets: entities.OrphanBulletsSynthesize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSlides is a convenience wrapper around NewParser(opts...).ParseSlides
func ParseSlides(text string, opts ...Option) []entities.Slide {
	return NewParser(opts...).ParseSlides(text)
}

// parseState is the fold accumulator. building distinguishes "no current
// slide" from a current slide that has no content yet.
type parseState struct {
	slides   []entities.Slide
	current  entities.Slide
	building bool
}

// ParseSlides classifies every line and folds them into slides. The result
// always holds at least one slide.
func (p *Parser) ParseSlides(text string) []entities.Slide {
	state := parseState{}
	for _, raw := range strings.Split(text, "\n") {
		state = p.step(state, ClassifyLine(raw))
	}
	state = state.flush()

	if len(state.slides) == 0 {
		return []entities.Slide{summarySlide(text)}
	}
	return state.slides
}

// step is the transition function for a single classified line
func (p *Parser) step(s parseState, line Line) parseState {
	switch line.Kind {
	case KindBlank:
		return s

	case KindHeading, KindSlideMarker:
		s = s.flush()
		title := line.Text
		if title == "" {
			title = entities.DefaultSlideTitle(len(s.slides))
		}
		return s.open(title)

	case KindBullet:
		if !s.building {
			if p.orphanBullets == entities.OrphanBulletsDrop {
				return s
			}
			s = s.open(UntitledSlideTitle)
		}
		return s.appendContent(line.Text)

	case KindCommentOpener:
		if s.building && line.Notes != "" {
			s.current.Notes = joinNotes(s.current.Notes, line.Notes)
		}
		return s

	case KindDivider, KindCodeFence:
		return s

	default:
		if !s.building {
			return s
		}
		return s.appendContent(line.Text)
	}
}

// flush emits the current slide when it has content and leaves the state
// without a current slide
func (s parseState) flush() parseState {
	if s.building && len(s.current.Content) > 0 {
		s.slides = append(s.slides, s.current)
	}
	s.current = entities.Slide{}
	s.building = false
	return s
}

func (s parseState) open(title string) parseState {
	s.current = entities.Slide{Title: title}
	s.building = true
	return s
}

func (s parseState) appendContent(text string) parseState {
	s.current.Content = append(s.current.Content, text)
	return s
}

func joinNotes(existing, notes string) string {
	if existing == "" {
		return notes
	}
	return existing + " " + notes
}

// summarySlide builds the placeholder shown when the text has no structure.
// The excerpt is cut from the raw text, then folded onto one line.
func summarySlide(text string) entities.Slide {
	raw := []rune(text)
	if len(raw) > summaryExcerptRunes {
		raw = raw[:summaryExcerptRunes]
	}
	excerpt := strings.Join(strings.Fields(string(raw)), " ")

	content := make([]string, 0, len(summaryIntro)+1)
	content = append(content, summaryIntro...)
	content = append(content, excerpt+"...")

	return entities.Slide{Title: SummarySlideTitle, Content: content}
}
