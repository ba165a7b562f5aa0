package status

import "testing"

func TestSeverityOrder(t *testing.T) {
	order := []Code{Success, NotFound, Failure, UserAbort, ScriptExit, UserExit, HelpExit, OSError, FatalError, Panic}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("%v should be less severe than %v", order[i-1], order[i])
		}
	}
}

func TestMergeKeepsMostSevere(t *testing.T) {
	a := Failuref("bound hit")
	b := Result{Code: Success}
	if got := Merge(a, b); got.Code != Failure {
		t.Fatalf("Merge() = %v, want Failure", got.Code)
	}
	if got := Merge(b, a); got.Code != Failure {
		t.Fatalf("Merge() = %v, want Failure", got.Code)
	}
}

func TestForceConvertsOnlyFailure(t *testing.T) {
	f := Force(Failuref("boom"))
	if f.Code != Success || f.Message != "boom" {
		t.Fatalf("Force(Failure) = %+v", f)
	}
	nf := NotFoundf("no match")
	if got := Force(nf); got.Code != NotFound {
		t.Fatalf("Force(NotFound) should pass through, got %v", got.Code)
	}
	abort := Result{Code: UserAbort}
	if got := Force(abort); got.Code != UserAbort {
		t.Fatalf("Force(UserAbort) should pass through, got %v", got.Code)
	}
}

func TestIsError(t *testing.T) {
	if Success.IsError() || NotFound.IsError() {
		t.Fatal("Success/NotFound must not be errors")
	}
	if !Failure.IsError() || !Panic.IsError() {
		t.Fatal("Failure and above must be errors")
	}
}
