package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/wizard/input"
	"github.com/milk9111/wizard/sim"
)

type stepKind uint8

const (
	stepDown stepKind = iota
	stepUp
	stepWait
	stepForce
	stepDeactivate
	stepActivate
)

// step is one instruction of a key script: press or release a key, let a
// number of frames pass, force a verdict or toggle deactivation.
type step struct {
	kind    stepKind
	key     input.Key
	frames  int
	verdict sim.Verdict
}

// parseScript reads whitespace separated instructions of the form
// down:<key>, up:<key>, wait:<frames>, force:<verdict>, deactivate and
// activate.
func parseScript(src string) ([]step, error) {
	var steps []step
	for _, tok := range strings.Fields(src) {
		switch tok {
		case "deactivate":
			steps = append(steps, step{kind: stepDeactivate})
			continue
		case "activate":
			steps = append(steps, step{kind: stepActivate})
			continue
		}
		op, arg, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("headless: %q: want op:arg", tok)
		}
		switch op {
		case "down", "up":
			k, ok := input.ParseKey(arg)
			if !ok {
				return nil, fmt.Errorf("headless: %q: unknown key %q", tok, arg)
			}
			kind := stepDown
			if op == "up" {
				kind = stepUp
			}
			steps = append(steps, step{kind: kind, key: k})
		case "wait":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("headless: %q: bad frame count", tok)
			}
			steps = append(steps, step{kind: stepWait, frames: n})
		case "force":
			v, ok := sim.ParseVerdict(arg)
			if !ok {
				return nil, fmt.Errorf("headless: %q: unknown verdict %q", tok, arg)
			}
			steps = append(steps, step{kind: stepForce, verdict: v})
		default:
			return nil, fmt.Errorf("headless: %q: unknown op %q", tok, op)
		}
	}
	return steps, nil
}
