package content

import (
	"errors"
	"testing"
)

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	r, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("NewDefaultRegistry: %v", err)
	}
	return r
}

func TestResolveTitlePowerPrefersDisplayName(t *testing.T) {
	r := mustDefault(t)
	tests := []struct {
		name  string
		power *Power
		want  string
	}{
		{name: "display name", power: &Power{Meta: Meta{Title: "aws-cdk"}, DisplayName: "X"}, want: "X"},
		{name: "empty display name", power: &Power{Meta: Meta{Title: "aws-cdk"}, DisplayName: ""}, want: "aws-cdk"},
		{name: "absent display name", power: &Power{Meta: Meta{Title: "stripe"}}, want: "stripe"},
	}
	for _, tt := range tests {
		got, err := r.ResolveTitle(tt.power)
		if err != nil {
			t.Fatalf("%s: ResolveTitle: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: title = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveTitleOtherVariantsUseTitle(t *testing.T) {
	r := mustDefault(t)
	items := []Item{
		&Prompt{Meta: Meta{Title: "Refactor helper"}},
		&Agent{Meta: Meta{Title: "Reviewer"}},
		&Hook{Meta: Meta{Title: "Lint on save"}},
		&SteeringDoc{Meta: Meta{Title: "Go style"}},
	}
	for _, item := range items {
		got, err := r.ResolveTitle(item)
		if err != nil {
			t.Fatalf("%T: %v", item, err)
		}
		if got != item.Info().Title {
			t.Fatalf("%T: title = %q, want %q", item, got, item.Info().Title)
		}
	}
}

func TestResolveBadges(t *testing.T) {
	r := mustDefault(t)
	tests := []struct {
		name string
		item Item
		want []Badge
	}{
		{
			name: "hook with trigger",
			item: &Hook{Trigger: "fileEdited"},
			want: []Badge{{Label: "fileEdited", Kind: BadgeTrigger}},
		},
		{name: "hook without trigger", item: &Hook{}, want: []Badge{}},
		{name: "hook blank trigger", item: &Hook{Trigger: "   "}, want: []Badge{}},
		{name: "power without keywords", item: &Power{}, want: []Badge{}},
		{
			name: "power keywords keep order",
			item: &Power{Keywords: []string{"aws", "", "cdk"}},
			want: []Badge{{Label: "aws", Kind: BadgeKeyword}, {Label: "cdk", Kind: BadgeKeyword}},
		},
		{
			name: "prompt category first",
			item: &Prompt{Category: "testing", Tags: []string{"go"}},
			want: []Badge{{Label: "testing", Kind: BadgeCategory}, {Label: "go", Kind: BadgeTag}},
		},
		{
			name: "agent model then tools",
			item: &Agent{Model: "sonnet", Tools: []string{"read", "write"}},
			want: []Badge{{Label: "sonnet", Kind: BadgeModel}, {Label: "read", Kind: BadgeTool}, {Label: "write", Kind: BadgeTool}},
		},
		{
			name: "steering file match adds pattern",
			item: &SteeringDoc{Inclusion: "fileMatch", FileMatch: "**/*.go"},
			want: []Badge{{Label: "fileMatch", Kind: BadgeInclusion}, {Label: "**/*.go", Kind: BadgePattern}},
		},
		{
			name: "steering always ignores pattern",
			item: &SteeringDoc{Inclusion: "always", FileMatch: "**/*.go"},
			want: []Badge{{Label: "always", Kind: BadgeInclusion}},
		},
	}
	for _, tt := range tests {
		got, err := r.ResolveBadges(tt.item)
		if err != nil {
			t.Fatalf("%s: ResolveBadges: %v", tt.name, err)
		}
		if got == nil {
			t.Fatalf("%s: got nil badges, want empty slice", tt.name)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: badges = %+v, want %+v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: badge[%d] = %+v, want %+v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestUnregisteredVariantIsConfigurationError(t *testing.T) {
	r := NewRegistry()
	_, err := r.ResolveTitle(&Prompt{Meta: Meta{Title: "x"}})
	if !errors.Is(err, ErrUnregisteredVariant) {
		t.Fatalf("err = %v, want ErrUnregisteredVariant", err)
	}

	full := mustDefault(t)
	_, err = full.ResolveBadges(&Prompt{Meta: Meta{Type: "promt"}})
	var uv *UnregisteredVariantError
	if !errors.As(err, &uv) {
		t.Fatalf("err = %v, want *UnregisteredVariantError", err)
	}
	if uv.Suggestion != VariantPrompt {
		t.Fatalf("suggestion = %q, want %q", uv.Suggestion, VariantPrompt)
	}
}

func TestVariantMismatch(t *testing.T) {
	r := mustDefault(t)
	_, err := r.ResolveTitle(&Prompt{Meta: Meta{Type: VariantPower, Title: "x"}})
	if !errors.Is(err, ErrVariantMismatch) {
		t.Fatalf("err = %v, want ErrVariantMismatch", err)
	}
}

func TestValidateReportsMissingVariants(t *testing.T) {
	r := NewRegistry()
	for _, d := range builtinDescriptors() {
		if d.Variant == VariantHook {
			continue
		}
		if err := r.Register(d); err != nil {
			t.Fatalf("Register(%s): %v", d.Variant, err)
		}
	}
	err := r.Validate()
	var uv *UnregisteredVariantError
	if !errors.As(err, &uv) || uv.Tag != string(VariantHook) {
		t.Fatalf("Validate err = %v, want missing hook", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := mustDefault(t)
	if err := r.Register(builtinDescriptors()[0]); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegisterNewVariantLeavesExistingCasesAlone(t *testing.T) {
	r := mustDefault(t)
	const snippet Variant = "snippet"
	err := r.Register(caseOf(snippet, plainTitle[*Prompt], func(*Prompt) []Badge {
		return []Badge{{Label: "snippet", Kind: BadgeTag}}
	}, SkeletonShape{Badges: 1}))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	badges, err := r.ResolveBadges(&Prompt{Meta: Meta{Type: snippet}})
	if err != nil || len(badges) != 1 {
		t.Fatalf("snippet badges = %+v, err = %v", badges, err)
	}
	title, err := r.ResolveTitle(&Power{Meta: Meta{Title: "t"}, DisplayName: "d"})
	if err != nil || title != "d" {
		t.Fatalf("power title = %q, err = %v", title, err)
	}
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{
		"prompt":        VariantPrompt,
		"Agents":        VariantAgent,
		" powers ":      VariantPower,
		"hook":          VariantHook,
		"steering-docs": VariantSteering,
	} {
		got, err := ParseVariant(in)
		if err != nil || got != want {
			t.Fatalf("ParseVariant(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	_, err := ParseVariant("powr")
	var uv *UnregisteredVariantError
	if !errors.As(err, &uv) || uv.Suggestion != VariantPower {
		t.Fatalf("ParseVariant(powr) err = %v, want suggestion power", err)
	}
	_, err = ParseVariant("zzzzzzzz")
	if !errors.As(err, &uv) || uv.Suggestion != "" {
		t.Fatalf("ParseVariant(zzzzzzzz) err = %v, want no suggestion", err)
	}
}

func TestSkeletonFor(t *testing.T) {
	r := mustDefault(t)
	shape, err := r.SkeletonFor(VariantHook)
	if err != nil {
		t.Fatalf("SkeletonFor: %v", err)
	}
	if shape.Badges != 1 {
		t.Fatalf("hook skeleton badges = %d, want 1", shape.Badges)
	}
	if _, err := r.SkeletonFor("unknown"); !errors.Is(err, ErrUnregisteredVariant) {
		t.Fatalf("unknown skeleton err = %v", err)
	}
}
