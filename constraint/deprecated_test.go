package constraint

import (
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/symplex/symplex/logger"
)

func TestOperatorConstructorsWarnOnce(t *testing.T) {
	var buf strings.Builder
	old := logger.Logger()
	logger.Set(zerolog.New(&buf))
	defer logger.Set(old)
	operatorWarnOnce = sync.Once{}

	vs := testVariables(1)
	x := vs[0]

	if _, err := Le(x, 1.0); err != nil {
		t.Fatal(err)
	}
	if _, err := Ge(x, 0.0); err != nil {
		t.Fatal(err)
	}
	if _, err := Eq(x, 2.0); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(buf.String(), "deprecated"); got != 1 {
		t.Fatalf("expected exactly one deprecation warning, got %d:\n%s", got, buf.String())
	}
}

func TestOperatorConstructorsMatchCompare(t *testing.T) {
	vs := testVariables(1)
	x := vs[0]

	got, err := Le(x, 3.0)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Compare(x, LessEq, 3.0)
	if err != nil {
		t.Fatal(err)
	}
	g, w := got.(*LinearConstraint), want.(*LinearConstraint)
	if g.Lower != w.Lower || g.Upper != w.Upper || !g.Expr.Equal(w.Expr) {
		t.Fatalf("Le diverged from Compare: %s vs %s", g, w)
	}
}
