package prompt

import (
	"strings"
	"testing"
)

func TestSystemPrompt_NoFlags(t *testing.T) {
	p := SystemPrompt(Flags{})

	if !strings.Contains(p, "Learning Notes Assistant") {
		t.Error("base prompt missing persona")
	}
	if strings.Contains(p, "Current Mode") {
		t.Error("prompt contains a mode directive with no flags set")
	}
}

func TestSystemPrompt_SingleFlag(t *testing.T) {
	p := SystemPrompt(Flags{Flashcards: true})

	if !strings.Contains(p, "Flashcards - Format all output as Q&A pairs") {
		t.Error("flashcards directive missing")
	}
	if strings.Count(p, "Current Mode") != 1 {
		t.Errorf("expected exactly one mode directive, got %d", strings.Count(p, "Current Mode"))
	}
}

func TestSystemPrompt_FlagsAdditiveInOrder(t *testing.T) {
	p := SystemPrompt(Flags{Brief: true, Cornell: true, Beginner: true})

	if strings.Count(p, "Current Mode") != 3 {
		t.Fatalf("expected three mode directives, got %d", strings.Count(p, "Current Mode"))
	}

	// Directives must appear in declaration order regardless of which are set.
	brief := strings.Index(p, "Brief/Concise")
	beginner := strings.Index(p, "Beginner - Simplify")
	cornell := strings.Index(p, "Cornell Notes")
	if !(brief < beginner && beginner < cornell) {
		t.Errorf("directives out of order: brief=%d beginner=%d cornell=%d", brief, beginner, cornell)
	}
}

func TestFlags_Any(t *testing.T) {
	if (Flags{}).Any() {
		t.Error("empty Flags reported active modes")
	}
	if !(Flags{Mindmap: true}).Any() {
		t.Error("Flags with Mindmap did not report active modes")
	}
}
