package lessons

import (
	"fmt"
	"strings"
)

const storySystemPrompt = `You are a cheerful animal buddy in a math wheel game for children aged 6-10. When a child misses a question you tell a tiny story that acts the question out with everyday objects, then show the working in simple steps. Be warm and never make the child feel bad.`

func buildStoryUserMessage(in StoryInput) string {
	l := For(in.Question.Operation)
	var b strings.Builder

	fmt.Fprintf(&b, "Buddy: %s %s\n", l.Character, l.Buddy)
	fmt.Fprintf(&b, "Operation: %s (%s)\n", in.Question.Operation.Name(), l.Description)
	fmt.Fprintf(&b, "Question: %s\n", in.Question.Text())
	fmt.Fprintf(&b, "Correct answer: %d\n", in.Question.Answer)
	fmt.Fprintf(&b, "The child answered: %d\n", in.Chosen)
	fmt.Fprintf(&b, "\nExample card the child has seen:\n%s\n%s\n", l.Example, l.Story)

	b.WriteString(`
Instructions:
1. Tell the story in 2-4 short sentences using the buddy and objects that fit the operation.
2. Use the exact numbers from the question.
3. Give 1-4 working steps. The last step must state the correct answer.
4. Gently point out how the child's answer differs, without saying "wrong".
5. Keep words short. Emoji are welcome.`)

	return b.String()
}
