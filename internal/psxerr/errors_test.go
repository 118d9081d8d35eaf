package psxerr

import "testing"

func TestErrorfCollapsesDuplicateAdjacentPrefix(t *testing.T) {
	inner := Errorf("bus: %v", "bad address")
	outer := Errorf("bus: %v", inner)
	if got, want := outer.Error(), "bus: bad address"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestIsAnyDistinguishesCuratedErrors(t *testing.T) {
	if IsAny(nil) {
		t.Fatal("IsAny(nil) = true")
	}
	if !IsAny(Errorf("cpu: %s", "fault")) {
		t.Fatal("IsAny(curated) = false")
	}
}

func TestIsMatchesOnLeadingMessage(t *testing.T) {
	err := Errorf("dma: %v", "invalid register")
	if !Is(err, "dma: %v") {
		t.Fatal("Is did not match its own leading message")
	}
	if Is(err, "bus: %v") {
		t.Fatal("Is matched an unrelated leading message")
	}
}

func TestHeadReturnsLeadingMessageOfCuratedError(t *testing.T) {
	if got, want := Head(Errorf("gte: %v", "overflow")), "gte: %v"; got != want {
		t.Fatalf("Head(curated) = %q, want %q", got, want)
	}
}
