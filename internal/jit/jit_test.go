package jit_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/abacilang/abaci/internal/jit"
)

func run(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	session := jit.NewSession("<test>", strings.NewReader(""), &out)
	if err := session.Run(source); err != nil {
		t.Fatalf("Run(%q): unexpected error: %v", source, err)
	}
	return out.String()
}

// TestLoopSuppressedPrint exercises a while loop whose body uses the
// trailing-`;` newline-suppression form, matching spec §8 scenario 1's
// observable shape (every iteration prints on the same line, the final
// statement terminates it).
func TestLoopSuppressedPrint(t *testing.T) {
	got := run(t, `
let n <- 3
while n > 0
print n;
print " ";
n <- n - 1
endwhile
print "Blastoff!"
`)
	want := "3 2 1 Blastoff!\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestRepeatComplexPromotion exercises repeat/until with mixed Integer +
// Complex promotion and formatted complex output (spec §8 scenario 2).
func TestRepeatComplexPromotion(t *testing.T) {
	got := run(t, `
let i <- 3
repeat
let j = i + 4j
print j
i <- i * 2
until i > 20
`)
	want := "3+4j\n6+4j\n12+4j\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestCloneOnAssignIndependence exercises spec §8 scenario 3: `let b = a`
// clones a class instance, so mutating a field on `a` afterward does not
// affect `b`.
func TestCloneOnAssignIndependence(t *testing.T) {
	got := run(t, `
class c(a,b)
endclass
let a <- c(1,"A")
let b = a
a.a <- 9
print a.a, b.a
`)
	want := "9 1\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestFunctionInstantiationPerArgType exercises spec §8 scenario 4: calling
// the same function once with Integer arguments and once with Floating
// arguments drives two distinct monomorphic instantiations.
func TestFunctionInstantiationPerArgType(t *testing.T) {
	got := run(t, `
fn difference(c,d)
if c<d
return d-c
else
return c-d
endif
endfn
print difference(2,5)
print difference(4.4,1.1)
`)
	want := "3\n3.3\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestMethodMutationThroughReceiver exercises spec §8 scenario 5: `let b
// <- a` clones a, and a method call on b mutates only b's own field,
// through the method's implicit-by-reference `this`.
func TestMethodMutationThroughReceiver(t *testing.T) {
	got := run(t, `
class c(n)
fn set(x)
this.n <- x
endfn
endclass
let a <- c(1.1j)
let b <- a
b.set(3.3j)
print a.n, b.n
`)
	want := "0+1.1j 0+3.3j\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestConstantReassignmentIsStaticError exercises spec §8 scenario 6: a
// constant (`let f = ...`) binding rejects a later plain assignment.
func TestConstantReassignmentIsStaticError(t *testing.T) {
	var out bytes.Buffer
	session := jit.NewSession("<test>", strings.NewReader(""), &out)
	err := session.Run(`
let f = 2
f <- f + 1
`)
	if err == nil {
		t.Fatal("expected NoConstantAssign error, got nil")
	}
	if !strings.Contains(err.Error(), "NoConstantAssign") {
		t.Fatalf("expected NoConstantAssign in error, got: %v", err)
	}
}

// TestEndToEndSnapshot snapshot-tests a broader program's full stdout,
// grounded on the teacher's internal/interp fixture-based go-snaps usage
// (TestDWScriptFixtures): rather than fixture files, abaci's closed
// surface is small enough to inline directly in the test.
func TestEndToEndSnapshot(t *testing.T) {
	got := run(t, `
class point(x,y)
fn length(scale)
return this.x * scale + this.y * scale
endfn
endclass
let p <- point(3,4)
print p.length(2)
let nums <- [int]
print nums
case 2
when 1
print "one"
when 2
print "two"
else
print "other"
endcase
`)
	snaps.MatchSnapshot(t, got)
}
