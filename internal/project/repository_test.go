package project

import (
	"reflect"
	"testing"
)

func TestRepositoryGetAbsent(t *testing.T) {
	r := NewRepository()
	if got := r.Get("nope"); got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}

func TestRepositoryGetOrCreate(t *testing.T) {
	r := NewRepository()

	first := r.GetOrCreate("p1", "Project One", "desc")
	if first == nil || first.Name != "Project One" {
		t.Fatalf("GetOrCreate() = %+v", first)
	}

	// Same ID returns the existing state, ignoring the new metadata.
	second := r.GetOrCreate("p1", "Renamed", "other")
	if second != first {
		t.Error("GetOrCreate created a duplicate state")
	}
	if second.Name != "Project One" {
		t.Errorf("Name = %q, want original", second.Name)
	}
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	r := NewRepository()
	state := NewState("p1", "P1", "")
	r.Update(state)

	if got := r.Get("p1"); got != state {
		t.Errorf("Get() = %v, want the updated state", got)
	}

	if !r.Delete("p1") {
		t.Error("Delete returned false for an existing project")
	}
	if r.Delete("p1") {
		t.Error("Delete returned true for a missing project")
	}
	if got := r.Get("p1"); got != nil {
		t.Errorf("Get() after delete = %v", got)
	}
}

func TestRepositoryListSorted(t *testing.T) {
	r := NewRepository()
	r.GetOrCreate("zeta", "Z", "")
	r.GetOrCreate("alpha", "A", "")
	r.GetOrCreate("mid", "M", "")

	got := r.List()
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}
