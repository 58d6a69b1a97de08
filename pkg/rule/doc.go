/*
Package rule implements the renaming rules a pipeline is made of.

	+-----------+   Build()   +--------+   Apply()   +------------+
	|   Spec    | ----------> |  Rule  | ----------> | file.Entry |
	| (params)  |             | (state)|             | name / ext |
	+-----------+             +--------+             +------------+

🎯 Purpose:
- Spec holds the validated configuration of one rule (its Params) and caches
  the Rule built from it until the params change
- Rule is the runnable form: compiled patterns plus per-pass state (counters,
  names already seen) that only Reset clears
- The set of kinds is closed; each Kind maps to one entry of a dispatch table
  holding its script field schema, decoder and apply function

🔄 Kinds (script ids are stable, never renumber):

	0 ChangeCase             lower/upper/capitalize words/sentences
	1 CounterAtPosition      counter at a fixed offset of name or extension
	2 CounterAtPattern       counter before/after the first pattern match
	3 CounterOnCollision     " <n>" appended when a name was already produced
	4 TextAtPosition         literal text at a fixed offset
	5 TextAtPattern          text before/after all/first/last matches
	6 Remove                 Replace with empty text
	7 Replace                replace all/first/last matches inside a window
	8 Move                   move a match before/after another, or to begin/end

⚡ Validation:
Params are checked when they are set, never while applying. Invalid params
leave the Spec in the invalid state, Build returns nil and the error lists
the offending parameter identifiers (see InvalidParamsError).

🔍 Example:

	spec := rule.NewSpec(rule.Replace{
		Pattern:     rule.Pattern{Text: "_", CaseSensitive: true},
		Replacement: " ",
	})
	r := spec.Build()
	r.Reset()
	r.Apply(entry)
*/
package rule
