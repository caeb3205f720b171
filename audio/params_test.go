package audio

import "testing"

func TestParamsClamp(t *testing.T) {
	p := newParams(synthParams)
	p.Set("cutoff", 99999)
	if want, got := 20000.0, mustGet(t, p, "cutoff"); want != got {
		t.Errorf("value not clamped to max: want %v, got %v", want, got)
	}
	p.Set("cutoff", -1)
	if want, got := 20.0, mustGet(t, p, "cutoff"); want != got {
		t.Errorf("value not clamped to min: want %v, got %v", want, got)
	}
}

func TestParamsCaseInsensitive(t *testing.T) {
	p := newParams(synthParams)
	p.Set("CUTOFF", 1234)
	if want, got := 1234.0, mustGet(t, p, "Cutoff"); want != got {
		t.Errorf("case-insensitive lookup failed: want %v, got %v", want, got)
	}
}

func TestParamsUnknownName(t *testing.T) {
	p := newParams(synthParams)
	p.Set("bogus", 1) // silent no-op
	if _, ok := p.Get("bogus"); ok {
		t.Error("unknown parameter should not exist")
	}
}

func TestParamsDefaults(t *testing.T) {
	p := newParams(synthParams)
	if want, got := 8000.0, mustGet(t, p, "cutoff"); want != got {
		t.Errorf("wrong default: want %v, got %v", want, got)
	}
	if want, got := 16.0, mustGet(t, p, "voices"); want != got {
		t.Errorf("wrong default: want %v, got %v", want, got)
	}
}

func TestParamsIndexMatchesTable(t *testing.T) {
	if want, got := numParams, len(synthParams); want != got {
		t.Fatalf("parameter table out of sync with indices: want %v entries, got %v", want, got)
	}
	for i, d := range synthParams {
		p := newParams(synthParams)
		p.Set(d.name, d.max)
		if want, got := d.max, p.load(i); want != got {
			t.Errorf("index mismatch for %s: want %v, got %v", d.name, want, got)
		}
	}
}

func mustGet(t *testing.T, p *Params, name string) float64 {
	t.Helper()
	v, ok := p.Get(name)
	if !ok {
		t.Fatalf("missing parameter: %s", name)
	}
	return v
}
