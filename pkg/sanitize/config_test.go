package sanitize

import (
	"slices"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	for _, tag := range []string{"script", "style", "link", "meta", "iframe", "button", "input", "form", "nav", "footer"} {
		if !slices.Contains(cfg.RemoveTags, tag) {
			t.Errorf("expected %q in RemoveTags", tag)
		}
	}
	if !slices.Equal(cfg.RemoveClassSubstrings, []string{"sidebar", "related", "comment"}) {
		t.Errorf("unexpected class markers: %v", cfg.RemoveClassSubstrings)
	}
	if cfg.ParagraphMargin != "1em 0" {
		t.Errorf("unexpected paragraph margin: %q", cfg.ParagraphMargin)
	}
	if cfg.StrictHTML {
		t.Error("strict HTML should be opt-in")
	}
}

func TestPresetMinimal(t *testing.T) {
	cfg := PresetMinimal()
	if cfg.StripEmptyElements {
		t.Error("minimal preset should keep empty elements")
	}
	if len(cfg.StripAttributes) != 0 {
		t.Error("minimal preset should keep attributes")
	}
}

func TestConfigMerge(t *testing.T) {
	t.Run("nil returns receiver", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.Merge(nil) != cfg {
			t.Error("expected merge with nil to return the same config")
		}
	})

	t.Run("lists append without duplicates", func(t *testing.T) {
		merged := DefaultConfig().Merge(&Config{
			RemoveTags:            []string{"aside", "script"},
			RemoveClassSubstrings: []string{"promo"},
		})
		if !slices.Contains(merged.RemoveTags, "aside") {
			t.Error("expected aside to be appended")
		}
		count := 0
		for _, tag := range merged.RemoveTags {
			if tag == "script" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected script once, got %d", count)
		}
		if !slices.Contains(merged.RemoveClassSubstrings, "promo") {
			t.Error("expected promo marker to be appended")
		}
	})

	t.Run("scalars override when set", func(t *testing.T) {
		base := DefaultConfig()
		merged := base.Merge(&Config{StrictHTML: true, ParagraphMargin: "0"})
		if !merged.StrictHTML || merged.ParagraphMargin != "0" {
			t.Errorf("unexpected merge result: %+v", merged)
		}
		if base.StrictHTML || base.ParagraphMargin != "1em 0" {
			t.Error("merge must not mutate the receiver")
		}
	})
}
