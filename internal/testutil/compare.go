package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gretago/internal/executor"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// PlanComparers make cmp understand cty values and node ids.
var PlanComparers = cmp.Options{
	cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) }),
	cmp.Comparer(func(a, b nodeid.ID) bool { return a == b }),
}

// RequireSamePlan fails the test when two plans differ in any step or option.
func RequireSamePlan(t *testing.T, want, got *executor.Plan) {
	t.Helper()
	if diff := cmp.Diff(want, got, PlanComparers); diff != "" {
		t.Fatalf("plans differ (-want +got):\n%s", diff)
	}
}
