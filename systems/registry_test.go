package systems

import (
	"testing"

	"github.com/pthm-cable/morphgraph/telemetry"
)

func TestRegistryCoversPhases(t *testing.T) {
	reg := NewSystemRegistry()

	for _, id := range []string{
		telemetry.PhaseEvaluate,
		telemetry.PhaseWrite,
		telemetry.PhaseRebuild,
		telemetry.PhaseDraw,
		telemetry.PhaseUI,
	} {
		if _, ok := reg.Get(id); !ok {
			t.Errorf("phase %q not registered", id)
		}
	}
	total := 0
	for _, cat := range reg.Categories() {
		total += len(reg.ByCategory(cat))
	}
	if total != 5 {
		t.Errorf("registered phases = %d, want 5", total)
	}
}

func TestRegistryGetNameFallback(t *testing.T) {
	reg := NewSystemRegistry()
	if got := reg.GetName(telemetry.PhaseEvaluate); got != "Evaluate" {
		t.Errorf("GetName(evaluate) = %q", got)
	}
	if got := reg.GetName("unknown"); got != "unknown" {
		t.Errorf("GetName(unknown) = %q, want fallback", got)
	}
}

func TestRegistryReplace(t *testing.T) {
	reg := NewSystemRegistry()
	reg.Register(SystemInfo{ID: telemetry.PhaseDraw, Name: "Render", Category: "host"})

	if got := reg.GetName(telemetry.PhaseDraw); got != "Render" {
		t.Errorf("GetName after replace = %q", got)
	}
	if got := len(reg.ByCategory(CategoryHost)); got != 4 {
		t.Errorf("host phases = %d, want 4", got)
	}
}

func TestRegistryCategories(t *testing.T) {
	reg := NewSystemRegistry()
	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != CategoryCore || cats[1] != CategoryHost {
		t.Errorf("Categories = %v, want [core host]", cats)
	}

	reg.Register(SystemInfo{ID: "export", Name: "Export", Category: "io"})
	if cats := reg.Categories(); len(cats) != 3 || cats[2] != "io" {
		t.Errorf("Categories after register = %v", cats)
	}
}
