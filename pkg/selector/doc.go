/*
Package selector is a small builder for structural CSS selectors and the two
declarations the compiled machine needs.

A Predicate matches one element (by id, by attribute, by checked state). A Selector
chains predicates left to right with the general sibling combinator (Later, "~") or
the adjacent sibling combinator (Next and Hops, "+"). Hops(n, p) expresses "the
element n siblings later", which is how positions are addressed when there is no
way to name them.

	rule := selector.Select(selector.ID("d").Unchecked()).
		Later(selector.ID("sa0").Checked()).
		Later(selector.Attr("for", "sb1")).
		Reveal()
	fmt.Println(rule) // #d:not(:checked)~#sa0:checked~[for="sb1"]{display:block;}
*/
package selector
