package event

import "testing"

func TestMagnitude_FlareClass(t *testing.T) {
	cases := []struct {
		intensity string
		want      float64
		ok        bool
	}{
		{"X1.0", 10000, true},
		{"X2.5", 25000, true},
		{"M1.5", 1500, true},
		{"C3.2", 320, true},
		{"B9.9", 99, true},
		{"A1.0", 1, true},
		{"Unknown", 0, false},
		{"", 0, false},
		{"Z5.0", 0, false},
	}
	for _, c := range cases {
		got, ok := Magnitude(TypeFlare, c.intensity)
		if ok != c.ok {
			t.Errorf("Magnitude(FLR, %q) ok = %v, want %v", c.intensity, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("Magnitude(FLR, %q) = %v, want %v", c.intensity, got, c.want)
		}
	}
}

func TestMagnitude_CMESpeed(t *testing.T) {
	got, ok := Magnitude(TypeCME, "S (800 km/s)")
	if !ok || got != 800 {
		t.Fatalf("Magnitude(CME) = %v, %v; want 800, true", got, ok)
	}
	got, ok = Magnitude(TypeCME, "R (1234.5 km/s)")
	if !ok || got != 1234.5 {
		t.Fatalf("Magnitude(CME) = %v, %v; want 1234.5, true", got, ok)
	}
	if _, ok := Magnitude(TypeCME, "N/A"); ok {
		t.Fatal("expected N/A to carry no magnitude")
	}
}

func TestMagnitude_StormKp(t *testing.T) {
	got, ok := Magnitude(TypeStorm, "Kp 7")
	if !ok || got != 7 {
		t.Fatalf("Magnitude(GST) = %v, %v; want 7, true", got, ok)
	}
	got, ok = Magnitude(TypeStorm, "Kp 6.67")
	if !ok || got != 6.67 {
		t.Fatalf("Magnitude(GST) = %v, %v; want 6.67, true", got, ok)
	}
	if _, ok := Magnitude(TypeStorm, "Unknown"); ok {
		t.Fatal("expected Unknown to carry no magnitude")
	}
}

func TestDownstream(t *testing.T) {
	if !Downstream(TypeFlare, TypeCME) || !Downstream(TypeFlare, TypeStorm) {
		t.Error("flares should propagate to CMEs and storms")
	}
	if !Downstream(TypeCME, TypeStorm) {
		t.Error("CMEs should propagate to storms")
	}
	if Downstream(TypeCME, TypeFlare) || Downstream(TypeStorm, TypeFlare) || Downstream(TypeStorm, TypeCME) {
		t.Error("no backward propagation expected")
	}
}
