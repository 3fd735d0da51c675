// Package record provides the schema-less container used for every object
// returned by The Blue Alliance API.
//
// A Record keeps the decoded fields and the exact bytes it was built from.
// Fields are read either by their JSON key or by an exported Go spelling of
// it; both lookups fail the same way when the key is absent:
//
//	team, _ := record.Materialize(body)
//	nick, _ := team.Get("nickname")
//	prov, _ := team.Attr("StateProv") // reads "state_prov"
//	_, err := team.Get("motto")
//	errors.Is(err, record.ErrMissingField) // true
//
// Nothing is validated at decode time. Typed helpers (Str, Int, Float, Bool,
// Value) and the nested wrappers (Nested, NestedList) only check the type of
// the value they are asked for.
package record
