package game

import "math/rand"

// Answer identifies one of the three multiple-choice slots on a Card, or
// the absence of a recorded answer. NoAnswer is the zero value so that a
// freshly-defaulted map entry reads as "hasn't answered yet" without any
// special-casing, mirroring the Python AnswersPool's defaultdict(NO_ANSWER).
type Answer string

const (
	NoAnswer Answer = ""
	AnswerA  Answer = "ANSWER_A"
	AnswerB  Answer = "ANSWER_B"
	AnswerC  Answer = "ANSWER_C"
)

// ParseAnswer converts wire text into an Answer, rejecting anything but the
// three legal choices (NoAnswer is never accepted from a client).
func ParseAnswer(text string) (Answer, error) {
	switch Answer(text) {
	case AnswerA, AnswerB, AnswerC:
		return Answer(text), nil
	default:
		return NoAnswer, ErrInvalidAnswerValue
	}
}

// Card is one prompt with three possible answers. There is no single
// objectively "correct" answer recorded on the card: the betting round
// settles against whatever the current answerer chose, not against any
// fixed key, matching the original Card dataclass (question/answer_A/
// answer_B/answer_C only).
type Card struct {
	ID       string `json:"-"`
	Question string `json:"question"`
	AnswerA  string `json:"answer_A"`
	AnswerB  string `json:"answer_B"`
	AnswerC  string `json:"answer_C"`
}

// cardNode is one link in the deck's circular carousel, mirroring the
// PlayerNode ring pattern used for player rotation.
type cardNode struct {
	card Card
	next *cardNode
}

// Deck holds a named set of cards, exposed through a carousel that advances
// one card at a time and can be reshuffled (which also resets the cursor to
// the front of the newly-shuffled order, as the original Deck.shuffle does
// by rebuilding the carousel from the shuffled slice).
type Deck struct {
	ID   string
	Name string

	cards   []Card
	current *cardNode
}

// NewDeck builds a Deck over the given cards in the order supplied; call
// Shuffle to randomize before play starts. A Deck must contain at least one
// card, matching spec.md §4.1's "shuffle on an empty deck is rejected at
// construction" rule -- enforced here, at the one place a Deck comes into
// being, rather than at shuffle time.
func NewDeck(id, name string, cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{ID: id, Name: name, cards: append([]Card(nil), cards...)}
	d.buildRing()
	return d, nil
}

func (d *Deck) buildRing() {
	if len(d.cards) == 0 {
		d.current = nil
		return
	}
	nodes := make([]*cardNode, len(d.cards))
	for i, c := range d.cards {
		nodes[i] = &cardNode{card: c}
	}
	for i, n := range nodes {
		n.next = nodes[(i+1)%len(nodes)]
	}
	d.current = nodes[0]
}

// Shuffle re-randomizes card order and resets the carousel to the new front.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.buildRing()
}

// CurrentCard returns the card currently facing up.
func (d *Deck) CurrentCard() Card {
	if d.current == nil {
		return Card{}
	}
	return d.current.card
}

// AdvanceCard rotates the carousel one position and returns the new front.
func (d *Deck) AdvanceCard() Card {
	if d.current == nil {
		return Card{}
	}
	d.current = d.current.next
	return d.current.card
}

// Count returns the number of cards loaded into the deck.
func (d *Deck) Count() int {
	return len(d.cards)
}
