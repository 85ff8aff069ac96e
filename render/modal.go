package render

import (
	"strings"

	"github.com/milk9111/wizard/sim"
)

// ModalColumns is how many characters fit on one modal line.
const ModalColumns = 34

var messages = map[sim.Verdict]string{
	sim.Win:   "You won! But remember: discreteness inductively discredits the deductive method.",
	sim.Fail:  "You lost! Folk wisdom for consolation: reality meaningfully transposes subjective catharsis.",
	sim.Pause: "While the game is paused, let us turn to the words of the great: structuralism, by definition, means a sign.",
	sim.Intro: "I can walk and fly with the arrow keys. Press Shift and I will cast a fireball! Press Esc to pause.",
}

const resumeHint = "Press Space to continue"

// ModalLines returns the wrapped modal text shown for a suspending verdict.
func ModalLines(v sim.Verdict, columns int) []string {
	msg, ok := messages[v]
	if !ok {
		return nil
	}
	lines := Wrap(msg, columns)
	return append(lines, "", resumeHint)
}

// Wrap breaks text into lines of at most columns characters, splitting on
// spaces. A single word longer than columns gets a line of its own.
func Wrap(text string, columns int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if columns <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= columns {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
