package youtrack

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for all (fields, customFields) pairs, the assembled
// projection equals fields when customFields is empty and
// fields + "," + customFields otherwise, never duplicating or dropping
// the separator.
func TestJoinFieldsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Generator for comma-separated projections built from identifiers,
	// e.g. "idReadable,summary,project(shortName)"
	genProjection := gen.SliceOfN(3, gen.Identifier()).Map(func(parts []string) string {
		return strings.Join(parts, ",")
	})

	properties.Property("empty addition leaves the projection unchanged", prop.ForAll(
		func(fields string) bool {
			return joinFields(fields, "") == fields
		},
		genProjection,
	))

	properties.Property("non-empty addition appends with exactly one comma", prop.ForAll(
		func(fields, customFields string) bool {
			got := joinFields(fields, customFields)
			return got == fields+","+customFields &&
				!strings.Contains(got, ",,") &&
				!strings.HasPrefix(got, ",") &&
				!strings.HasSuffix(got, ",")
		},
		genProjection,
		gen.Identifier(),
	))

	properties.Property("field count is the sum of both lists", prop.ForAll(
		func(fields, customFields string) bool {
			got := joinFields(fields, customFields)
			return len(strings.Split(got, ",")) == len(strings.Split(fields, ","))+len(strings.Split(customFields, ","))
		},
		genProjection,
		genProjection,
	))

	properties.TestingRun(t)
}
