// Package lessons holds the learning cards for each wheel operation and
// generates personalised buddy stories for missed questions.
package lessons

import "github.com/abhisek/mathwheel/internal/wheel"

// Lesson is a learning card for one operation.
type Lesson struct {
	Operation   wheel.Operation `json:"operation"`
	Title       string          `json:"title"`
	Emoji       string          `json:"emoji"`
	Character   string          `json:"character"`
	Buddy       string          `json:"buddy"`
	Description string          `json:"description"`
	Example     string          `json:"example"`
	Story       string          `json:"story"`
	Tip         string          `json:"tip"`
}

var catalog = map[wheel.Operation]Lesson{
	wheel.Addition: {
		Operation:   wheel.Addition,
		Title:       "ADDITION",
		Emoji:       "🍎",
		Character:   "🐰",
		Buddy:       "Bunny",
		Description: "We put two numbers together!",
		Example:     "2 + 3 = 5",
		Story:       "🍎🍎 2 apples + 🍎🍎🍎 3 apples = 🍎🍎🍎🍎🍎 5 apples!\nLet's count them: 1, 2, 3, 4, 5!",
		Tip:         "You can count on your fingers!\n✋ Left hand: 2 fingers\n✋ Right hand: 3 fingers\nAll together: 5 fingers!",
	},
	wheel.Subtraction: {
		Operation:   wheel.Subtraction,
		Title:       "SUBTRACTION",
		Emoji:       "🎈",
		Character:   "🐻",
		Buddy:       "Bear",
		Description: "We take some away!",
		Example:     "5 − 2 = 3",
		Story:       "🎈🎈🎈🎈🎈 There were 5 balloons\n💨 2 of them flew away!\n🎈🎈🎈 3 balloons are left!",
		Tip:         "Start from the bigger number!\nCount back from 5: 4, 3\nThe answer is 3!",
	},
	wheel.Multiplication: {
		Operation:   wheel.Multiplication,
		Title:       "MULTIPLICATION",
		Emoji:       "🍪",
		Character:   "🦄",
		Buddy:       "Unicorn",
		Description: "We add up equal groups!",
		Example:     "3 × 2 = 6",
		Story:       "🍪🍪 + 🍪🍪 + 🍪🍪\n3 groups with 2 cookies each\nThat's 6 cookies!",
		Tip:         "3 × 2 means 2 + 2 + 2\nAdd the group of 2 three times!\n2 + 2 + 2 = 6",
	},
	wheel.Division: {
		Operation:   wheel.Division,
		Title:       "DIVISION",
		Emoji:       "🍕",
		Character:   "🐨",
		Buddy:       "Koala",
		Description: "We share fairly!",
		Example:     "6 ÷ 2 = 3",
		Story:       "🍕🍕🍕🍕🍕🍕 6 pizza slices\n👦👧 2 kids share them\nEach kid gets 🍕🍕🍕 3 slices!",
		Tip:         "Hand out the 6 slices evenly to 2 kids:\n👦 3 slices\n👧 3 slices\nThe answer is 3!",
	},
}

// For returns the card for op. Unknown operations get the addition card.
func For(op wheel.Operation) Lesson {
	if l, ok := catalog[op]; ok {
		return l
	}
	return catalog[wheel.Addition]
}

// All returns every card in wheel.Operations order.
func All() []Lesson {
	out := make([]Lesson, 0, len(wheel.Operations))
	for _, op := range wheel.Operations {
		out = append(out, catalog[op])
	}
	return out
}

// Guide is the how-to-play card.
var Guide = struct {
	Intro   string
	Steps   []string
	Scoring []string
	Tip     string
}{
	Intro: "Spin the wheel, get an operation and solve the question! Every correct answer earns you a point.",
	Steps: []string{
		"Spin the wheel to pick an operation",
		"Work out the question",
		"Choose the right answer and score",
	},
	Scoring: []string{
		"⭐ 1 point for every correct answer",
		"🔥 Keep a streak going with answers in a row",
		"🏆 Beat your best streak!",
	},
	Tip: "Take your time and think it through! Use your fingers or paper and pencil when it gets tricky.",
}

// Feedback lines shown after an answer.
const (
	PraiseTitle          = "SUPER!"
	PraiseMessage        = "Correct! You're amazing! On to the next one! 🌟"
	EncouragementTitle   = "That's okay!"
	EncouragementMessage = "Don't worry! Mistakes are part of learning. Let's try again! 🌈"
)
