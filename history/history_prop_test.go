package history

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/hupe1980/supervisorkit/core"
)

// Folding the same activation spans under both modes must yield a condensed
// transcript that is an order-preserving subsequence of the full one, and
// both transcripts must carry contiguous sequence indexes.
func TestFoldCondensedIsSubsequenceOfFull(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		spanCount := rapid.IntRange(0, 8).Draw(rt, "spans")
		spans := make([][]core.Message, spanCount)
		for i := range spans {
			turns := rapid.IntRange(1, 6).Draw(rt, "turns")
			span := make([]core.Message, turns)
			for j := range span {
				span[j] = core.NewAIMessage(
					fmt.Sprintf("worker_%d", i),
					fmt.Sprintf("span %d turn %d", i, j),
				)
			}
			spans[i] = span
		}

		full, _ := New(OutputModeFullHistory)
		condensed, _ := New(OutputModeLastMessage)

		fullState := core.NewConversationState("supervisor")
		condensedState := core.NewConversationState("supervisor")
		for _, span := range spans {
			full.Fold(fullState, span)
			condensed.Fold(condensedState, span)
		}

		fullMsgs := fullState.Messages()
		condensedMsgs := condensedState.Messages()

		for i, m := range fullMsgs {
			if m.SequenceIndex != i {
				rt.Fatalf("full transcript index %d got %d", i, m.SequenceIndex)
			}
		}
		for i, m := range condensedMsgs {
			if m.SequenceIndex != i {
				rt.Fatalf("condensed transcript index %d got %d", i, m.SequenceIndex)
			}
		}

		// subsequence check on message identity
		j := 0
		for _, m := range fullMsgs {
			if j < len(condensedMsgs) && condensedMsgs[j].ID == m.ID {
				j++
			}
		}
		if j != len(condensedMsgs) {
			rt.Fatalf("condensed transcript is not a subsequence of the full one: matched %d of %d", j, len(condensedMsgs))
		}

		if len(condensedMsgs) != spanCount {
			rt.Fatalf("condensed mode must keep exactly one message per span: got %d for %d spans", len(condensedMsgs), spanCount)
		}
	})
}
