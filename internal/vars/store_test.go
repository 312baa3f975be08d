package vars

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
	"mathcli/internal/value"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(persist.NewMemoryStore(), nil)
	if err := s.SetSession("test-session"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	return s
}

func mustGet(t *testing.T, s *Store, name string) value.Value {
	t.Helper()
	v, ok := s.Get(name)
	if !ok {
		t.Fatalf("variable %q not found", name)
	}
	return v
}

func TestSetGetUnset(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("radius", value.Number(4), false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v := mustGet(t, s, "radius"); v.Num() != 4 {
		t.Fatalf("Get(radius) = %v", v)
	}

	if err := s.Unset("radius"); err != nil {
		t.Fatalf("Unset: %v", err)
	}
	if _, ok := s.Get("radius"); ok {
		t.Fatal("radius should be gone after Unset")
	}

	if err := s.Unset("radius"); !errors.Is(err, operror.ErrVariableNotFound) {
		t.Fatalf("Unset(missing) = %v, want VariableNotFound", err)
	}
}

func TestEmptyNameRejected(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("", value.Number(1), false); !errors.Is(err, operror.ErrInvalidValue) {
		t.Fatalf("Set(empty) = %v, want InvalidValue", err)
	}
}

func TestScopeShadowing(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("x", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	s.PushScope()
	if err := s.Set("x", value.Number(2), false); err != nil {
		t.Fatal(err)
	}

	// Inner frame shadows outer.
	if v := mustGet(t, s, "x"); v.Num() != 2 {
		t.Fatalf("shadowed x = %v, want 2", v)
	}

	s.PopScope()
	if v := mustGet(t, s, "x"); v.Num() != 1 {
		t.Fatalf("after pop x = %v, want 1", v)
	}
}

func TestPopDiscardsInnerBindings(t *testing.T) {
	s := newTestStore(t)

	s.PushScope()
	if err := s.Set("inner", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	s.PopScope()
	if _, ok := s.Get("inner"); ok {
		t.Fatal("inner binding should vanish with its frame")
	}
}

func TestPopRootIsNoOp(t *testing.T) {
	s := newTestStore(t)

	if got := s.Depth(); got != 1 {
		t.Fatalf("initial Depth = %d", got)
	}
	s.PopScope()
	if got := s.Depth(); got != 1 {
		t.Fatalf("Depth after popping root = %d, want 1", got)
	}
}

func TestUnsetTouchesOnlyTopFrame(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("x", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	s.PushScope()

	// x is visible but lives in the outer frame: Unset must not reach it.
	if err := s.Unset("x"); !errors.Is(err, operror.ErrVariableNotFound) {
		t.Fatalf("Unset(outer binding) = %v, want VariableNotFound", err)
	}
	s.PopScope()
	if v := mustGet(t, s, "x"); v.Num() != 1 {
		t.Fatalf("outer x damaged: %v", v)
	}
}

func TestPersistentSurvivesScopeClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("tax", value.Number(0.2), true); err != nil {
		t.Fatal(err)
	}
	s.ClearCurrentScope()

	if v := mustGet(t, s, "tax"); v.Num() != 0.2 {
		t.Fatalf("persistent tax lost: %v", v)
	}
}

func TestClearAllRemovesEverything(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("a", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("b", value.Number(2), true); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get("a"); ok {
		t.Error("scoped variable survived ClearAll")
	}
	if _, ok := s.Get("b"); ok {
		t.Error("persistent variable survived ClearAll")
	}
	if got := s.Depth(); got != 1 {
		t.Errorf("Depth after ClearAll = %d, want 1", got)
	}
}

func TestClearScopedKeepsPersistent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("a", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("b", value.Number(2), true); err != nil {
		t.Fatal(err)
	}
	s.PushScope()
	if err := s.Set("c", value.Number(3), false); err != nil {
		t.Fatal(err)
	}

	s.ClearScoped()

	if _, ok := s.Get("a"); ok {
		t.Error("scoped variable survived ClearScoped")
	}
	if _, ok := s.Get("c"); ok {
		t.Error("inner-frame variable survived ClearScoped")
	}
	if v, ok := s.Get("b"); !ok || v.Num() != 2 {
		t.Errorf("persistent variable b = %v, %v; want 2, true", v, ok)
	}
	if got := s.Depth(); got != 1 {
		t.Errorf("Depth after ClearScoped = %d, want 1", got)
	}
}

func TestPersistPromotion(t *testing.T) {
	s := newTestStore(t)

	if err := s.Persist("missing"); !errors.Is(err, operror.ErrVariableNotFound) {
		t.Fatalf("Persist(missing) = %v, want VariableNotFound", err)
	}

	if err := s.Set("x", value.Number(7), false); err != nil {
		t.Fatal(err)
	}
	s.PushScope()
	// Promotion reaches bindings in any visible frame.
	if err := s.Persist("x"); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	s.PopScope()
	s.ClearCurrentScope()
	if v := mustGet(t, s, "x"); v.Num() != 7 {
		t.Fatalf("promoted x lost: %v", v)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("n", value.Number(4.5), false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("flag", value.Boolean(true), false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("label", value.Text("hello"), false); err != nil {
		t.Fatal(err)
	}

	exported := s.ExportVariables()
	want := map[string]string{"n": "4.5", "flag": "true", "label": "hello"}
	if diff := cmp.Diff(want, exported); diff != "" {
		t.Fatalf("exported variables mismatch (-want +got):\n%s", diff)
	}

	fresh := newTestStore(t)
	if err := fresh.ImportVariables(exported, false); err != nil {
		t.Fatal(err)
	}

	if v := mustGet(t, fresh, "n"); v.Kind() != value.KindNumber || v.Num() != 4.5 {
		t.Errorf("n reimported as %v (%s)", v, v.Kind())
	}
	if v := mustGet(t, fresh, "flag"); v.Kind() != value.KindBoolean || !v.Bool() {
		t.Errorf("flag reimported as %v (%s)", v, v.Kind())
	}
	if v := mustGet(t, fresh, "label"); v.Kind() != value.KindText || v.Str() != "hello" {
		t.Errorf("label reimported as %v (%s)", v, v.Kind())
	}
}

func TestImportReplaceVersusMerge(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("old", value.Number(1), false); err != nil {
		t.Fatal(err)
	}

	if err := s.ImportVariables(map[string]string{"new": "2"}, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("old"); !ok {
		t.Error("merge import dropped existing variable")
	}

	if err := s.ImportVariables(map[string]string{"only": "3"}, false); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("old"); ok {
		t.Error("replace import kept existing variable")
	}
	if _, ok := s.Get("new"); ok {
		t.Error("replace import kept previously imported variable")
	}
	if v := mustGet(t, s, "only"); v.Num() != 3 {
		t.Errorf("only = %v", v)
	}
}

func TestSessionIsolation(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("a", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("p", value.Number(2), true); err != nil {
		t.Fatal(err)
	}

	if err := s.SetSession("other"); err != nil {
		t.Fatalf("SetSession(other): %v", err)
	}
	if _, ok := s.Get("a"); ok {
		t.Error("scoped variable leaked across sessions")
	}
	if _, ok := s.Get("p"); ok {
		t.Error("persistent variable leaked across sessions")
	}

	// Switching back restores the full state, including scope structure.
	if err := s.SetSession("test-session"); err != nil {
		t.Fatalf("SetSession(back): %v", err)
	}
	if v := mustGet(t, s, "a"); v.Num() != 1 {
		t.Errorf("a not restored: %v", v)
	}
	if v := mustGet(t, s, "p"); v.Num() != 2 {
		t.Errorf("p not restored: %v", v)
	}
}

func TestSetSessionSameIDKeepsState(t *testing.T) {
	s := newTestStore(t)

	s.PushScope()
	if err := s.Set("x", value.Number(1), false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSession("test-session"); err != nil {
		t.Fatal(err)
	}
	if got := s.Depth(); got != 2 {
		t.Errorf("Depth after same-session switch = %d, want 2", got)
	}
	if _, ok := s.Get("x"); !ok {
		t.Error("same-session switch dropped state")
	}
}

func TestNamesSorted(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Set(name, value.Number(1), false); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names = %v, want %v", got, want)
		}
	}
}
