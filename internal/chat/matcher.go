// Package chat holds the rental assistant: a keyword matcher over a fixed
// reply table and the transcript that a client drives it through.
package chat

import (
	"math/rand/v2"
	"strings"
)

var greetingWords = []string{"hi", "hello", "hey", "greetings", "howdy"}

type rule struct {
	keywords []string
	reply    string
}

// rules are evaluated top to bottom; the first rule with any keyword
// contained in the input wins. Order matters: pricing precedes the generic
// "rent" rule so cost questions that mention renting get the pricing answer.
var rules = []rule{
	{[]string{"price", "cost", "how much"}, Table["pricing"]["structure"]},
	{[]string{"rent", "how to rent", "rental process"}, Table["rent"]["general"]},
	{[]string{"rental period", "how long", "duration"}, Table["rent"]["duration"]},
	{[]string{"payment", "pay", "deposit"}, Table["rent"]["payment"]},
	{[]string{"what equipment", "equipment type"}, Table["equipment"]["types"]},
	{[]string{"available", "in stock"}, Table["equipment"]["availability"]},
	{[]string{"condition", "quality", "maintenance"}, Table["equipment"]["condition"]},
	{[]string{"popular", "best seller", "most rented"}, Table["equipment"]["popular"]},
	{[]string{"create listing", "list my", "rent out my"}, Table["listing"]["create"]},
	{[]string{"listing requirement", "can i list"}, Table["listing"]["requirements"]},
	{[]string{"commission", "listing fee"}, Table["listing"]["fees"]},
	{[]string{"sign up", "create account", "register"}, Table["account"]["signup"]},
	{[]string{"login", "sign in", "forgot password"}, Table["account"]["login"]},
	{[]string{"discount", "coupon", "special offer"}, Table["pricing"]["discounts"]},
	{[]string{"delivery", "deliver", "bring"}, Table["delivery"]["options"]},
	{[]string{"return", "give back"}, Table["return"]["process"]},
	{[]string{"late", "overdue"}, Table["return"]["late"]},
	{[]string{"damage", "broken"}, Table["return"]["damage"]},
	{[]string{"support", "help", "contact", "talk to human"}, Table["support"]["contact"]},
	{[]string{"hours", "when open", "available time"}, Table["support"]["hours"]},
	{[]string{"location", "where", "store"}, Table["location"]["stores"]},
}

// Matcher picks one reply for a line of user input. The zero value is not
// usable; call NewMatcher.
type Matcher struct {
	pick func(n int) int
}

// NewMatcher returns a Matcher. pick chooses among the greeting variants and
// must return a value in [0, n); nil means uniformly random.
func NewMatcher(pick func(n int) int) *Matcher {
	if pick == nil {
		pick = rand.IntN
	}
	return &Matcher{pick: pick}
}

// Greeting returns one of the greeting variants.
func (m *Matcher) Greeting() string {
	i := m.pick(len(Greetings))
	if i < 0 || i >= len(Greetings) {
		i = 0
	}
	return Greetings[i]
}

// Reply never fails: unmatched input gets Fallback.
func (m *Matcher) Reply(msg string) string {
	text := strings.ToLower(msg)

	for _, g := range greetingWords {
		if strings.HasPrefix(text, g) {
			return m.Greeting()
		}
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.reply
			}
		}
	}
	return Fallback
}
